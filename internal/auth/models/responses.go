package models

import pulse "teampulse/internal/models"

// TenantRequestMessage is returned when a tenant request has been stored.
const TenantRequestMessage = "Tenant request submitted. We will contact you once it has been reviewed."

func ToTenantRequestResult(req *TenantRequest) pulse.TenantRequestResult {
	return pulse.TenantRequestResult{
		Message: TenantRequestMessage,
		Request: pulse.TenantRequestRef{ID: req.ID},
	}
}

// DetailResponse matches the {"detail": "..."} body the cookie endpoints use.
type DetailResponse struct {
	Detail string `json:"detail"`
}
