package templates

import (
	"fmt"
	"strings"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/pkg/utils"
)

// Reply text handed back to the voice transport. Wording stays close to what
// the assistant actually says so transcripts read naturally.

// ReservationSummary renders the five reservation fields line by line
func ReservationSummary(r *entity.Reservation) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("name: %s\n", r.Name))
	sb.WriteString(fmt.Sprintf("phone: %s\n", utils.FormatPhone(r.Phone)))
	sb.WriteString(fmt.Sprintf("date: %s\n", r.Date))
	sb.WriteString(fmt.Sprintf("time: %s\n", r.Time))
	sb.WriteString(fmt.Sprintf("guests: %d", r.Guests))
	return sb.String()
}

func ReservationFound(r *entity.Reservation) string {
	return "Found reservation:\n" + ReservationSummary(r)
}

func ReservationNotFound() string {
	return "No reservation found for that phone number."
}

func ReservationCreated(r *entity.Reservation, hoursCaveat bool) string {
	msg := fmt.Sprintf("Perfect! Reservation made for %s on %s at %s for %d guests.",
		r.Name, r.Date, r.Time, r.Guests)
	if hoursCaveat {
		msg += " Please note I could not verify the opening hours for that day."
	}
	return msg
}

func ReservationCancelled() string {
	return "Your reservation has been successfully canceled."
}

func NothingToCancel() string {
	return "No reservation found to cancel."
}

func AlreadyBooked(phone string) string {
	return fmt.Sprintf("There is already a reservation under %s. Would you like to cancel it and book a new one?",
		utils.FormatPhone(phone))
}

func NoReservationDetails() string {
	return "No reservation information available."
}

func CurrentReservation(r *entity.Reservation) string {
	return "Current reservation details:\n" + ReservationSummary(r)
}

// AvailabilityReply formats the verdict of an availability check
func AvailabilityReply(v *entity.Verdict) string {
	switch v.Kind {
	case entity.VerdictOpen:
		return fmt.Sprintf("The restaurant is open at %s on %s, %s. You can proceed with the booking.",
			v.TimeText, v.Weekday, v.DateText)
	case entity.VerdictClosed:
		return fmt.Sprintf("I'm sorry, the restaurant is not open at %s on %s. The hours are from %s to %s.",
			v.TimeText, v.Weekday, v.Hours.OpenText, v.Hours.CloseText)
	case entity.VerdictUnverifiable:
		if v.Weekday != "" {
			return fmt.Sprintf("I can proceed with the booking for %s, %s, but I could not verify the opening hours.",
				v.Weekday, v.DateText)
		}
		return "I can proceed with the booking, but I could not verify the opening hours."
	case entity.VerdictUnparseable:
		if v.BadField == "time" {
			return BadTime()
		}
		return BadDate()
	}
	return KnowledgeApology()
}

func BadDate() string {
	return "I'm sorry, I could not understand the date you provided. Please try again."
}

func BadTime() string {
	return "I'm sorry, I could not understand the time you provided. Please try again."
}

func MissingField(field string) string {
	return fmt.Sprintf("Could you tell me the %s for the reservation?", field)
}

func StorageApology() string {
	return "Sorry, something went wrong while handling your reservation. Please try again in a moment."
}

func KnowledgeApology() string {
	return "Sorry, I had trouble finding an answer to that."
}

func SteerNewGuest() string {
	return "Welcome to our reservation service! Would you like to book a table or check an existing reservation? " +
		"If you have a reservation, I can look it up by phone number."
}

func GenericAck(name string) string {
	if name != "" {
		return fmt.Sprintf("Of course, %s. What else can I help you with?", name)
	}
	return "Of course. What else can I help you with?"
}

// Front-desk notification bodies

func FrontdeskCreatedSubject(r *entity.Reservation) string {
	return fmt.Sprintf("New reservation: %s on %s at %s", r.Name, r.Date, r.Time)
}

func FrontdeskCreatedBody(r *entity.Reservation) string {
	return "A new reservation was confirmed by the assistant.\n\n" + ReservationSummary(r) + "\n"
}

func FrontdeskCancelledSubject(phone string) string {
	return fmt.Sprintf("Reservation cancelled for %s", utils.FormatPhone(phone))
}

func FrontdeskCancelledBody(phone string) string {
	return fmt.Sprintf("The reservation under %s was cancelled by the guest.\n", utils.FormatPhone(phone))
}
