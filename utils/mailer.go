package utils

import (
	"fmt"
	"strings"

	"freight-app/config"
	"freight-app/services/upstream"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// SendBookingNotice emails the ops mailbox after a successful submit. Best
// effort: a mail failure never rolls back a booking.
func SendBookingNotice(orderNo string, req *upstream.BookingRequest) {
	if config.NoticeEmail == "" || config.SMTPUser == "" {
		return
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Booking %s submitted with %d shipment(s):\n\n", orderNo, len(req.Items))
	for _, item := range req.Items {
		fmt.Fprintf(&body, "  %s  %s / %s  %.2f\n",
			item.TrackingNumber, item.Supplier, item.ChannelName, item.TotalFee)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPUser)
	msg.SetHeader("To", config.NoticeEmail)
	msg.SetHeader("Subject", "Booking submitted: "+orderNo)
	msg.SetBody("text/plain", body.String())

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		logrus.Warnf("booking notice mail failed: %v", err)
	}
}
