package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/nechmerust/sanctuary-api/internal/model"
)

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func orAge(age *int) string {
	if age == nil {
		return "Not provided"
	}
	return fmt.Sprintf("%d", *age)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// composeEmail renders the subject and plain-text body for a notification.
func composeEmail(kind Kind, data any, now time.Time) (subject, body string, err error) {
	switch kind {
	case KindContact:
		sub, ok := data.(*model.ContactSubmission)
		if !ok {
			return "", "", fmt.Errorf("contact notification: unexpected payload %T", data)
		}
		return composeContact(sub, now)
	case KindVolunteer:
		app, ok := data.(*model.VolunteerApplication)
		if !ok {
			return "", "", fmt.Errorf("volunteer notification: unexpected payload %T", data)
		}
		return composeVolunteer(app, now)
	case KindEventRegistration:
		reg, ok := data.(*EventRegistrationData)
		if !ok {
			return "", "", fmt.Errorf("registration notification: unexpected payload %T", data)
		}
		return composeRegistration(reg, now)
	default:
		return "", "", fmt.Errorf("unknown notification kind: %s", kind)
	}
}

func composeContact(sub *model.ContactSubmission, now time.Time) (string, string, error) {
	subject := fmt.Sprintf("New Contact Form Submission - %s",
		orDefault(sub.Subject.Resolve(sub.PreferredLanguage), "General Inquiry"))

	var b strings.Builder
	b.WriteString("New contact form submission from the website:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.Email)
	fmt.Fprintf(&b, "Phone: %s\n", orDefault(sub.Phone, "Not provided"))
	fmt.Fprintf(&b, "Inquiry Type: %s\n", orDefault(sub.InquiryType, "General"))
	fmt.Fprintf(&b, "Preferred Contact: %s\n", orDefault(sub.PreferredContactMethod, "Email"))
	fmt.Fprintf(&b, "Language: %s\n\n", sub.PreferredLanguage)
	fmt.Fprintf(&b, "Message:\n%s\n\n",
		orDefault(sub.Message.Resolve(sub.PreferredLanguage), "No message provided"))
	fmt.Fprintf(&b, "Submitted at: %s\n", formatSubmittedAt(now))
	return subject, b.String(), nil
}

func composeVolunteer(app *model.VolunteerApplication, now time.Time) (string, string, error) {
	subject := fmt.Sprintf("New Volunteer Application - %s %s", app.FirstName, app.LastName)

	var b strings.Builder
	b.WriteString("New volunteer application received:\n\n")
	b.WriteString("Personal Information:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", app.FirstName, app.LastName)
	fmt.Fprintf(&b, "- Email: %s\n", app.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", orDefault(app.Phone, "Not provided"))
	fmt.Fprintf(&b, "- Age: %s\n", orAge(app.Age))
	fmt.Fprintf(&b, "- Location: %s\n\n", orDefault(app.Location, "Not provided"))
	b.WriteString("Availability:\n")
	fmt.Fprintf(&b, "- Weekdays: %s\n", yesNo(app.AvailabilityWeekdays))
	fmt.Fprintf(&b, "- Weekends: %s\n", yesNo(app.AvailabilityWeekends))
	fmt.Fprintf(&b, "- Mornings: %s\n", yesNo(app.AvailabilityMornings))
	fmt.Fprintf(&b, "- Afternoons: %s\n", yesNo(app.AvailabilityAfternoons))
	fmt.Fprintf(&b, "- Evenings: %s\n\n", yesNo(app.AvailabilityEvenings))
	b.WriteString("Experience & Skills:\n")
	fmt.Fprintf(&b, "- Skills: %s\n", orDefault(app.Skills, "Not provided"))
	fmt.Fprintf(&b, "- Animal Experience: %s\n", orDefault(app.ExperienceAnimals, "Not provided"))
	fmt.Fprintf(&b, "- Farming Experience: %s\n\n", orDefault(app.ExperienceFarming, "Not provided"))
	fmt.Fprintf(&b, "Motivation:\n%s\n\n",
		orDefault(app.Motivation.Resolve(app.PreferredLanguage), "Not provided"))
	b.WriteString("Additional Information:\n")
	fmt.Fprintf(&b, "- Driver's License: %s\n", yesNo(app.HasDriversLicense))
	fmt.Fprintf(&b, "- Can Lift Heavy Objects: %s\n", yesNo(app.CanLiftHeavy))
	fmt.Fprintf(&b, "- Allergies: %s\n", orDefault(app.Allergies, "None mentioned"))
	fmt.Fprintf(&b, "- Medical Conditions: %s\n\n", orDefault(app.MedicalConditions, "None mentioned"))
	b.WriteString("Emergency Contact:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(app.EmergencyContactName, "Not provided"))
	fmt.Fprintf(&b, "- Phone: %s\n\n", orDefault(app.EmergencyContactPhone, "Not provided"))
	fmt.Fprintf(&b, "Preferred Language: %s\n\n", app.PreferredLanguage)
	fmt.Fprintf(&b, "Submitted at: %s\n", formatSubmittedAt(now))
	return subject, b.String(), nil
}

func composeRegistration(reg *EventRegistrationData, now time.Time) (string, string, error) {
	subject := fmt.Sprintf("Event Registration - %s", orDefault(reg.EventTitle, "Unknown Event"))

	var b strings.Builder
	b.WriteString("New event registration received:\n\n")
	fmt.Fprintf(&b, "Event: %s\n", orDefault(reg.EventTitle, "Unknown Event"))
	fmt.Fprintf(&b, "Event Date: %s\n\n", orDefault(reg.EventDate, "Unknown Date"))
	b.WriteString("Participant Information:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", reg.FirstName, reg.LastName)
	fmt.Fprintf(&b, "- Email: %s\n", reg.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", orDefault(reg.Phone, "Not provided"))
	fmt.Fprintf(&b, "- Age: %s\n\n", orAge(reg.Age))
	b.WriteString("Special Requirements:\n")
	fmt.Fprintf(&b, "- Dietary Restrictions: %s\n", orDefault(reg.DietaryRestrictions, "None"))
	fmt.Fprintf(&b, "- Special Requests: %s\n\n", orDefault(reg.SpecialRequests, "None"))
	b.WriteString("Emergency Contact:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(reg.EmergencyContactName, "Not provided"))
	fmt.Fprintf(&b, "- Phone: %s\n\n", orDefault(reg.EmergencyContactPhone, "Not provided"))
	b.WriteString("Payment Information:\n")
	fmt.Fprintf(&b, "- Amount: %d CZK\n", reg.PaymentAmount)
	fmt.Fprintf(&b, "- Status: %s\n\n", orDefault(reg.PaymentStatus, "Pending"))
	fmt.Fprintf(&b, "Preferred Language: %s\n\n", orDefault(reg.PreferredLanguage, model.DefaultLanguage))
	fmt.Fprintf(&b, "Submitted at: %s\n", formatSubmittedAt(now))
	return subject, b.String(), nil
}
