package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"cancelflow/internal/entity"
	"cancelflow/internal/entity/generated"
	"cancelflow/internal/usecase"
)

const maxBodyBytes = 16 << 10

// patchFields lists the keys a PATCH body may carry; true marks the nullable ones.
var patchFields = map[string]bool{
	"found_job":                    false,
	"found_via_migratemate":        false,
	"visa_type":                    true,
	"freeform_feedback":            true,
	"reason_key":                   false,
	"employer_immigration_support": false,
	"willing_to_pay_dollars":       false,
	"willing_to_pay_cents":         false,
}

// parseID accepts any UUID spelling and returns the canonical lower-case form.
func parseID(s string) (strfmt.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return strfmt.UUID(u.String()), nil
}

func decodeStart(raw []byte) (strfmt.UUID, error) {
	var req generated.StartCancellationRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidPayload, err)
	}
	if err := req.Validate(strfmt.Default); err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidPayload, err)
	}
	id, err := parseID(req.SubscriptionID.String())
	if err != nil {
		return "", fmt.Errorf("%w: subscriptionId: %v", usecase.ErrInvalidPayload, err)
	}
	return id, nil
}

// decodePatch rejects unknown keys and nulls on non-nullable keys, then
// validates the body against the request model. A null visa_type or
// freeform_feedback becomes an explicit clear.
func decodePatch(raw []byte) (usecase.PatchInput, error) {
	var in usecase.PatchInput

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return in, fmt.Errorf("%w: %v", usecase.ErrInvalidPayload, err)
	}
	for k, v := range fields {
		nullable, ok := patchFields[k]
		if !ok {
			return in, fmt.Errorf("%w: unknown field %q", usecase.ErrInvalidPayload, k)
		}
		if !nullable && isNull(v) {
			return in, fmt.Errorf("%w: %s must not be null", usecase.ErrInvalidPayload, k)
		}
	}

	var req generated.PatchCancellationRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return in, fmt.Errorf("%w: %v", usecase.ErrInvalidPayload, err)
	}
	// Length limits apply to the trimmed text.
	req.VisaType = trimmed(req.VisaType)
	req.FreeformFeedback = trimmed(req.FreeformFeedback)
	if err := req.Validate(strfmt.Default); err != nil {
		return in, fmt.Errorf("%w: %v", usecase.ErrInvalidPayload, err)
	}

	in.FoundJob = req.FoundJob
	in.FoundViaMigrateMate = req.FoundViaMigratemate
	in.ReasonKey = req.ReasonKey
	in.EmployerImmigrationSupport = req.EmployerImmigrationSupport
	in.WillingToPayDollars = req.WillingToPayDollars
	in.WillingToPayCents = req.WillingToPayCents
	if _, ok := fields["visa_type"]; ok {
		in.VisaType = nullString(req.VisaType)
	}
	if _, ok := fields["freeform_feedback"]; ok {
		in.FreeformFeedback = nullString(req.FreeformFeedback)
	}
	return in, nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func nullString(p *string) *entity.NullString {
	if p == nil {
		return &entity.NullString{}
	}
	return &entity.NullString{String: *p, Valid: true}
}
