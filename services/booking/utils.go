package booking

import (
	"strings"
	"time"

	"okclinic/models"
	"okclinic/utils/apperr"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// CanonicalSlot returns date and clock in their zero-padded forms, so "9:30"
// and "09:30" name the same slot.
func CanonicalSlot(date, clock string) (string, string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", "", apperr.Validation("date must be formatted as YYYY-MM-DD")
	}
	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		return "", "", apperr.Validation("time must be formatted as HH:MM")
	}
	return d.Format(dateLayout), t.Format(timeLayout), nil
}

// AppointmentTime combines a slot's date and time into an instant in loc.
func AppointmentTime(date, clock string, loc *time.Location) (time.Time, error) {
	date, clock, err := CanonicalSlot(date, clock)
	if err != nil {
		return time.Time{}, err
	}
	at, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid appointment date or time")
	}
	return at, nil
}

func validateRequest(req *models.BookingRequest) error {
	req.Pet = strings.TrimSpace(req.Pet)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	var missing []string
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.Time == "" {
		missing = append(missing, "time")
	}
	if req.Pet == "" {
		missing = append(missing, "pet")
	}
	if len(missing) > 0 {
		return apperr.Validation("missing required fields: " + strings.Join(missing, ", "))
	}
	for _, svc := range req.Services {
		if svc.Price < 0 {
			return apperr.Validation("service prices cannot be negative")
		}
	}
	return nil
}

// snapshotServices copies the request's services so the booking never
// shares backing storage with the caller.
func snapshotServices(in []models.ServiceSnapshot) []models.ServiceSnapshot {
	out := make([]models.ServiceSnapshot, len(in))
	copy(out, in)
	return out
}
