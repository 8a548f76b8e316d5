package model

type Staff struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Role       StaffRole `json:"role" db:"role"`
	Speciality string    `json:"speciality" db:"speciality"`
	Bio        string    `json:"bio" db:"bio"`
	Active     bool      `json:"active" db:"active"`
	Timestamps
}

type StaffRequest struct {
	Name       string    `json:"name" binding:"required,max=200"`
	Email      string    `json:"email" binding:"required,email"`
	Phone      string    `json:"phone" binding:"max=50"`
	Role       StaffRole `json:"role" binding:"required,enum"`
	Speciality string    `json:"speciality"`
	Bio        string    `json:"bio"`
	Active     *bool     `json:"active"`
}

func (r *StaffRequest) Apply(s *Staff) {
	s.Name = r.Name
	s.Email = r.Email
	s.Phone = r.Phone
	s.Role = r.Role
	s.Speciality = r.Speciality
	s.Bio = r.Bio
	s.Active = r.Active == nil || *r.Active
}
