package model

// Enum is implemented by every closed string set persisted by the API. The
// validator's "enum" tag and the store's CHECK constraints agree on the values.
type Enum interface {
	Valid() bool
}

type MemberStatus string

const (
	MemberStatusActive          MemberStatus = "Active"
	MemberStatusWaitlist        MemberStatus = "Waitlist"
	MemberStatusFrozen          MemberStatus = "Frozen"
	MemberStatusBanned          MemberStatus = "Banned"
	MemberStatusPendingApproval MemberStatus = "Pending_Approval"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberStatusActive, MemberStatusWaitlist, MemberStatusFrozen,
		MemberStatusBanned, MemberStatusPendingApproval:
		return true
	}
	return false
}

type MemberTier string

const (
	MemberTierFounding    MemberTier = "Founding"
	MemberTierStandard    MemberTier = "Standard"
	MemberTierCorporate   MemberTier = "Corporate"
	MemberTierMedicalOnly MemberTier = "Medical_Only"
)

func (t MemberTier) Valid() bool {
	switch t {
	case MemberTierFounding, MemberTierStandard, MemberTierCorporate, MemberTierMedicalOnly:
		return true
	}
	return false
}

type StaffRole string

const (
	StaffRoleSuperAdmin   StaffRole = "Super_Admin"
	StaffRoleManager      StaffRole = "Manager"
	StaffRolePractitioner StaffRole = "Practitioner"
	StaffRoleFrontDesk    StaffRole = "Front_Desk"
)

func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleSuperAdmin, StaffRoleManager, StaffRolePractitioner, StaffRoleFrontDesk:
		return true
	}
	return false
}

type ServiceType string

const (
	ServiceTypeClass        ServiceType = "Class"
	ServiceTypeTreatment    ServiceType = "Treatment"
	ServiceTypeConsultation ServiceType = "Consultation"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeClass, ServiceTypeTreatment, ServiceTypeConsultation:
		return true
	}
	return false
}

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "Booked"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "NoShow"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusBooked, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "Pending"
	OrderStatusPaid    OrderStatus = "Paid"
	OrderStatusTab     OrderStatus = "Tab"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusTab:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodTab       PaymentMethod = "Tab"
	PaymentMethodCardToken PaymentMethod = "Card_Token"
	PaymentMethodCash      PaymentMethod = "Cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodTab, PaymentMethodCardToken, PaymentMethodCash:
		return true
	}
	return false
}

type RecordType string

const (
	RecordTypeGeneral      RecordType = "General"
	RecordTypeBloodwork    RecordType = "Bloodwork"
	RecordTypePhysio       RecordType = "Physio"
	RecordTypeConsultation RecordType = "Consultation"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordTypeGeneral, RecordTypeBloodwork, RecordTypePhysio, RecordTypeConsultation:
		return true
	}
	return false
}

type SubscriptionType string

const (
	SubscriptionTypeMonthly SubscriptionType = "Monthly"
	SubscriptionTypeAnnual  SubscriptionType = "Annual"
)

func (t SubscriptionType) Valid() bool {
	return t == SubscriptionTypeMonthly || t == SubscriptionTypeAnnual
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "Active"
	SubscriptionStatusCancelled SubscriptionStatus = "Cancelled"
	SubscriptionStatusPaused    SubscriptionStatus = "Paused"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusCancelled, SubscriptionStatusPaused:
		return true
	}
	return false
}

type NoteCategory string

const (
	NoteCategoryGeneral   NoteCategory = "General"
	NoteCategoryMedical   NoteCategory = "Medical"
	NoteCategoryBilling   NoteCategory = "Billing"
	NoteCategoryBehaviour NoteCategory = "Behaviour"
	NoteCategoryFollowUp  NoteCategory = "Follow_Up"
)

func (c NoteCategory) Valid() bool {
	switch c {
	case NoteCategoryGeneral, NoteCategoryMedical, NoteCategoryBilling,
		NoteCategoryBehaviour, NoteCategoryFollowUp:
		return true
	}
	return false
}

type ProductCategory string

const (
	ProductCategoryService      ProductCategory = "Service"
	ProductCategoryProduct      ProductCategory = "Product"
	ProductCategorySubscription ProductCategory = "Subscription"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case ProductCategoryService, ProductCategoryProduct, ProductCategorySubscription:
		return true
	}
	return false
}

type ContentCategory string

const (
	ContentCategoryVideo   ContentCategory = "Video"
	ContentCategoryPDF     ContentCategory = "PDF"
	ContentCategoryImage   ContentCategory = "Image"
	ContentCategoryArticle ContentCategory = "Article"
)

func (c ContentCategory) Valid() bool {
	switch c {
	case ContentCategoryVideo, ContentCategoryPDF, ContentCategoryImage, ContentCategoryArticle:
		return true
	}
	return false
}

// InvoiceStatus collapses order statuses: only a paid order is Paid.
type InvoiceStatus string

const (
	InvoiceStatusPaid   InvoiceStatus = "Paid"
	InvoiceStatusUnpaid InvoiceStatus = "Unpaid"
)

func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusUnpaid
}
