package professional

import (
	"fmt"

	"barberly/utils"
)

func newError(kind, code, format string, args ...interface{}) *utils.ServiceError {
	return &utils.ServiceError{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewProfessionalNotFound(id string) error {
	return newError(utils.KindNotFound, "professionalNotFound", "professional %s not found", id)
}

func NewDuplicateProfessional(email string) error {
	return newError(utils.KindConflict, "duplicateProfessional", "a professional with email %s already exists", email)
}

func NewInvalidProfessional(reason string) error {
	return newError(utils.KindInvalidInput, "invalidProfessional", "%s", reason)
}

func NewInvalidBusinessHours(reason string) error {
	return newError(utils.KindInvalidInput, "invalidBusinessHours", "%s", reason)
}

func NewInvalidHoliday(reason string) error {
	return newError(utils.KindInvalidInput, "invalidHoliday", "%s", reason)
}

func NewDuplicateHoliday(date string) error {
	return newError(utils.KindConflict, "duplicateHoliday", "a holiday already exists on %s", date)
}

func NewHolidayNotFound(id string) error {
	return newError(utils.KindNotFound, "holidayNotFound", "holiday %s not found", id)
}

func NewInvalidService(reason string) error {
	return newError(utils.KindInvalidInput, "invalidService", "%s", reason)
}

func NewInvalidOffering(reason string) error {
	return newError(utils.KindInvalidInput, "invalidOffering", "%s", reason)
}

func NewDuplicateOffering(serviceID string) error {
	return newError(utils.KindConflict, "duplicateOffering", "an offering for service %s already exists", serviceID)
}

func NewOfferingNotFound(id string) error {
	return newError(utils.KindNotFound, "offeringNotFound", "offering %s not found", id)
}

// NewNotOwner rejects professionals acting on another professional's resources.
func NewNotOwner() error {
	return newError(utils.KindForbidden, "notOwner", "resource belongs to another professional")
}
