// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import "fmt"

// OTPMessage carries a verification code.
func OTPMessage(to, username, otp string, validMinutes int) Message {
	return Message{
		To:      to,
		Subject: "Your WeebTsuki verification code",
		Body: fmt.Sprintf("Hi %s,\n\nYour verification code is %s.\nIt expires in %d minutes.\n\nIf you did not sign up, ignore this e-mail.\n",
			username, otp, validMinutes),
	}
}

// ResetLinkMessage carries a password reset link.
func ResetLinkMessage(to, username, link string, validMinutes int) Message {
	return Message{
		To:      to,
		Subject: "Reset your WeebTsuki password",
		Body: fmt.Sprintf("Hi %s,\n\nOpen the link below to choose a new password:\n%s\n\nThe link expires in %d minutes.\n",
			username, link, validMinutes),
	}
}

// NewPasswordMessage carries a generated password.
func NewPasswordMessage(to, username, password string) Message {
	return Message{
		To:      to,
		Subject: "Your new WeebTsuki password",
		Body: fmt.Sprintf("Hi %s,\n\nYour password was reset. Your new password is:\n%s\n\nPlease sign in and change it right away.\n",
			username, password),
	}
}
