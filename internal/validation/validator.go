package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/business-directory-api/internal/models"
	"github.com/google/uuid"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9+()\s.-]{5,25}$`)
)

const (
	maxTitleLen   = 200
	maxMessageLen = 5000
	// MaxPageSize bounds the limit filter on listing queries
	MaxPageSize = 100
)

// ValidateBusinessInput validates a business create/update payload
func ValidateBusinessInput(in *models.BusinessInput) *models.ValidationError {
	var fields []models.FieldError

	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, models.FieldError{Field: "title", Message: "title is required"})
	} else if len(in.Title) > maxTitleLen {
		fields = append(fields, models.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds maximum of %d characters", maxTitleLen),
		})
	}

	if in.Email != "" && !emailRegex.MatchString(in.Email) {
		fields = append(fields, models.FieldError{Field: "email", Message: "invalid email format", Value: in.Email})
	}

	if in.Phone != "" && !phoneRegex.MatchString(in.Phone) {
		fields = append(fields, models.FieldError{Field: "phone", Message: "invalid phone format", Value: in.Phone})
	}

	if in.Website != "" && !strings.HasPrefix(in.Website, "http://") && !strings.HasPrefix(in.Website, "https://") {
		fields = append(fields, models.FieldError{Field: "website", Message: "website must start with http:// or https://", Value: in.Website})
	}

	if len(fields) > 0 {
		return models.NewValidationError(fields...)
	}
	return nil
}

// ValidateCategoryInput validates a category create/update payload
func ValidateCategoryInput(in *models.CategoryInput) *models.ValidationError {
	if strings.TrimSpace(in.Name) == "" {
		return models.NewValidationError(models.FieldError{Field: "name", Message: "name is required"})
	}
	return nil
}

// ValidateClaimInput validates an ownership-claim submission
func ValidateClaimInput(in *models.ClaimInput) *models.ValidationError {
	var fields []models.FieldError

	if in.BusinessID == "" {
		fields = append(fields, models.FieldError{Field: "business_id", Message: "business_id is required"})
	} else if !isValidUUID(in.BusinessID) {
		fields = append(fields, models.FieldError{Field: "business_id", Message: "invalid UUID format", Value: in.BusinessID})
	}

	if in.UserID == "" {
		fields = append(fields, models.FieldError{Field: "user_id", Message: "user_id is required"})
	} else if !isValidUUID(in.UserID) {
		fields = append(fields, models.FieldError{Field: "user_id", Message: "invalid UUID format", Value: in.UserID})
	}

	if len(in.Message) > maxMessageLen {
		fields = append(fields, models.FieldError{
			Field:   "message",
			Message: fmt.Sprintf("message exceeds maximum of %d characters", maxMessageLen),
		})
	}

	if len(fields) > 0 {
		return models.NewValidationError(fields...)
	}
	return nil
}

// ValidateClaimReviewInput validates an admin's claim review
func ValidateClaimReviewInput(in *models.ClaimReviewInput) *models.ValidationError {
	var fields []models.FieldError

	if in.Decision != models.ClaimDecisionApprove && in.Decision != models.ClaimDecisionReject {
		fields = append(fields, models.FieldError{
			Field:   "decision",
			Message: "decision must be one of: approve, reject",
			Value:   string(in.Decision),
		})
	}

	if in.ReviewerID == "" {
		fields = append(fields, models.FieldError{Field: "reviewer_id", Message: "reviewer_id is required"})
	} else if !isValidUUID(in.ReviewerID) {
		fields = append(fields, models.FieldError{Field: "reviewer_id", Message: "invalid UUID format", Value: in.ReviewerID})
	}

	if len(fields) > 0 {
		return models.NewValidationError(fields...)
	}
	return nil
}

// ValidateLeadInput validates a contact-form submission
func ValidateLeadInput(in *models.LeadInput) *models.ValidationError {
	var fields []models.FieldError

	if in.BusinessID == "" {
		fields = append(fields, models.FieldError{Field: "business_id", Message: "business_id is required"})
	} else if !isValidUUID(in.BusinessID) {
		fields = append(fields, models.FieldError{Field: "business_id", Message: "invalid UUID format", Value: in.BusinessID})
	}

	if strings.TrimSpace(in.SenderName) == "" {
		fields = append(fields, models.FieldError{Field: "sender_name", Message: "sender_name is required"})
	}

	if in.SenderEmail == "" {
		fields = append(fields, models.FieldError{Field: "sender_email", Message: "sender_email is required"})
	} else if !emailRegex.MatchString(in.SenderEmail) {
		fields = append(fields, models.FieldError{Field: "sender_email", Message: "invalid email format", Value: in.SenderEmail})
	}

	if strings.TrimSpace(in.Message) == "" {
		fields = append(fields, models.FieldError{Field: "message", Message: "message is required"})
	} else if len(in.Message) > maxMessageLen {
		fields = append(fields, models.FieldError{
			Field:   "message",
			Message: fmt.Sprintf("message exceeds maximum of %d characters", maxMessageLen),
		})
	}

	if len(fields) > 0 {
		return models.NewValidationError(fields...)
	}
	return nil
}

// ValidatePageInput validates a page create/update payload
func ValidatePageInput(in *models.PageInput) *models.ValidationError {
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError(models.FieldError{Field: "title", Message: "title is required"})
	}
	return nil
}

// ValidateBusinessFilter validates and normalizes listing-query filters.
// A zero limit falls back to defaultLimit; anything above MaxPageSize is
// clamped rather than rejected.
func ValidateBusinessFilter(f *models.BusinessFilter, defaultLimit int) *models.ValidationError {
	var fields []models.FieldError

	if f.CategoryID != "" && !isValidUUID(f.CategoryID) {
		fields = append(fields, models.FieldError{Field: "category_id", Message: "invalid UUID format", Value: f.CategoryID})
	}
	if f.Limit < 0 {
		fields = append(fields, models.FieldError{Field: "limit", Message: "limit must not be negative", Value: f.Limit})
	}
	if f.Offset < 0 {
		fields = append(fields, models.FieldError{Field: "offset", Message: "offset must not be negative", Value: f.Offset})
	}

	if len(fields) > 0 {
		return models.NewValidationError(fields...)
	}

	if f.Limit == 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return nil
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
