package email

import "fmt"

// Domain mail bodies. Plain inline templates; nothing here is user-supplied
// besides the interpolated values.

func OfferResponseBody(propertyTitle, action string, amount float64) (subject, body string) {
	subject = fmt.Sprintf("Your offer on %s was %s", propertyTitle, action)
	body = fmt.Sprintf(
		"<p>Your offer of $%.2f on <b>%s</b> has been <b>%s</b> by the seller.</p>"+
			"<p>Sign in to PropertyDeals to review the details.</p>",
		amount, propertyTitle, action,
	)
	return subject, body
}

func RoleDecisionBody(role, decision, notes string) (subject, body string) {
	subject = fmt.Sprintf("Your %s application was %s", role, decision)
	body = fmt.Sprintf("<p>Your application for the <b>%s</b> role has been <b>%s</b>.</p>", role, decision)
	if notes != "" {
		body += fmt.Sprintf("<p>Reviewer notes: %s</p>", notes)
	}
	return subject, body
}

func OfferReceivedBody(propertyTitle string, amount float64) (subject, body string) {
	subject = fmt.Sprintf("New offer on %s", propertyTitle)
	body = fmt.Sprintf(
		"<p>You received a new offer of $%.2f on <b>%s</b>.</p>"+
			"<p>Sign in to PropertyDeals to accept, counter or reject it.</p>",
		amount, propertyTitle,
	)
	return subject, body
}
