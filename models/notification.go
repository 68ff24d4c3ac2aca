package models

// NotificationKind names every outbound email written to the outbox.
type NotificationKind string

const (
	NotificationAcceptForJobSeeker     NotificationKind = "accept_for_job_seeker"
	NotificationAcceptForProxy         NotificationKind = "accept_for_proxy"
	NotificationRefuseForJobSeeker     NotificationKind = "refuse_for_job_seeker"
	NotificationRefuseForProxy         NotificationKind = "refuse_for_proxy"
	NotificationCancel                 NotificationKind = "cancel"
	NotificationDeliverApproval        NotificationKind = "deliver_approval"
	NotificationManualDeliveryRequired NotificationKind = "manual_delivery_required"
	NotificationEvaluationOpening      NotificationKind = "evaluation_opening"
	NotificationEvaluationResult       NotificationKind = "evaluation_result"
	NotificationEvaluationSummary      NotificationKind = "evaluation_summary"
	NotificationEvaluationSanction     NotificationKind = "evaluation_sanction"
)

type AgencyNotificationStatus string

const (
	AgencyNotificationPending AgencyNotificationStatus = "pending"
	AgencyNotificationSent    AgencyNotificationStatus = "sent"
	AgencyNotificationError   AgencyNotificationStatus = "error"
)
