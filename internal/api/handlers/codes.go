package handlers

// Коды причин ошибок в теле ответа
const (
	CodeInvalidBody = "invalid_request_body"
	CodeValidation  = "validation_error"
	CodeInvalidDate = "invalid_date"
	CodeInternal    = "internal_error"
	CodeRateLimited = "rate_limited"

	CodeMissingAuthToken       = "missing_auth_token"
	CodeInvalidAuthToken       = "invalid_auth_token"
	CodeProfileNotFinalized    = "profile_not_finalized"
	CodeInsufficientRole       = "insufficient_role"
	CodeRoleChangeForbidden    = "role_change_forbidden"
	CodeInsufficientOrNotOwner = "insufficient_role_or_not_owner"

	CodeUserNotFound         = "user_not_found"
	CodeServiceNotFound      = "service_not_found"
	CodeAvailabilityNotFound = "availability_not_found"
	CodeAppointmentNotFound  = "appointment_not_found"
	CodeStaffNotFound        = "staff_not_found"
	CodeReferenceNotFound    = "reference_not_found"

	CodeInvalidTimeRange       = "invalid_time_range"
	CodeAvailabilityOverlap    = "availability_overlap"
	CodeBatchOverlap           = "batch_overlap"
	CodeStaffMismatch          = "staff_mismatch"
	CodeNotOwnerOfAvailability = "not_owner_of_availability"
	CodeCannotReassignStaff    = "cannot_reassign_staffId"
	CodeCannotReassignCustomer = "cannot_reassign_customerId"
	CodeScheduleBusy           = "schedule_busy"
	CodeStaffBusy              = "staff_busy"
	CodeEmailTaken             = "email_taken"
	CodeServiceInUse           = "service_in_use"
)
