package service

import (
	"context"

	"teampulse/internal/auth/models"
	"teampulse/internal/platform/privacy"
	dErrors "teampulse/pkg/domain-errors"
	"teampulse/pkg/requestcontext"
)

// RequestTenant stores a pending tenant request. Duplicate emails and tenant
// names are reported together as field errors.
func (s *Service) RequestTenant(ctx context.Context, req *models.TenantRequestRequest) (*models.TenantRequest, error) {
	fields := map[string][]string{}

	taken, err := s.users.EmailTaken(ctx, req.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email")
	}
	if taken {
		fields["email"] = append(fields["email"], MsgEmailInUse)
	} else {
		requested, err := s.requests.EmailRequested(ctx, req.Email)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email")
		}
		if requested {
			fields["email"] = append(fields["email"], MsgEmailRequested)
		}
	}

	taken, err = s.tenants.NameTaken(ctx, req.TenantName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check tenant name")
	}
	if taken {
		fields["tenantName"] = append(fields["tenantName"], MsgTenantNameInUse)
	} else {
		requested, err := s.requests.TenantNameRequested(ctx, req.TenantName)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check tenant name")
		}
		if requested {
			fields["tenantName"] = append(fields["tenantName"], MsgTenantNameRequest)
		}
	}

	if len(fields) > 0 {
		return nil, dErrors.NewFieldErrors(fields)
	}

	record := &models.TenantRequest{
		TenantName: req.TenantName,
		Email:      req.Email,
		Name:       req.Name,
		Domain:     req.Domain,
		Status:     models.TenantRequestPending,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.requests.Create(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store tenant request")
	}
	if s.metrics != nil {
		s.metrics.IncrementTenantRequests()
	}
	s.logger.InfoContext(ctx, "tenant request stored",
		"tenant_request_id", record.ID,
		"email", privacy.MaskEmail(record.Email),
		"request_id", requestcontext.RequestID(ctx),
	)
	return record, nil
}
