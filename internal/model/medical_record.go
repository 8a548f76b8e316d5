package model

import "time"

type MedicalRecord struct {
	ID         int64      `json:"id" db:"id"`
	MemberID   int64      `json:"memberId" db:"member_id"`
	DoctorName string     `json:"doctorName" db:"doctor_name"`
	Summary    string     `json:"summary" db:"summary"`
	SecureLink *string    `json:"secureLink" db:"secure_link"`
	VisitDate  time.Time  `json:"visitDate" db:"visit_date"`
	RecordType RecordType `json:"recordType" db:"record_type"`
	Timestamps
}

type MedicalRecordRequest struct {
	DoctorName string     `json:"doctorName" binding:"required,max=200"`
	Summary    string     `json:"summary" binding:"required"`
	SecureLink *string    `json:"secureLink" binding:"omitempty,url"`
	VisitDate  time.Time  `json:"visitDate" binding:"required"`
	RecordType RecordType `json:"recordType" binding:"omitempty,enum"`
}

func (r *MedicalRecordRequest) Apply(rec *MedicalRecord) {
	rec.DoctorName = r.DoctorName
	rec.Summary = r.Summary
	rec.SecureLink = r.SecureLink
	rec.VisitDate = r.VisitDate
	rec.RecordType = r.RecordType
	if rec.RecordType == "" {
		rec.RecordType = RecordTypeGeneral
	}
}
