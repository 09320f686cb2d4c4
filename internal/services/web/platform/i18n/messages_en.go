package i18n

import "golang.org/x/text/message"

func init() {
	lang := English

	message.SetString(lang, "app.name", "OURHOUR")
	message.SetString(lang, "app.title", "%s | OURHOUR")

	// Verification
	message.SetString(lang, "verify.title", "Verification")
	message.SetString(lang, "verify.success.heading", "You're verified")
	message.SetString(lang, "verify.success.body", "Your link was confirmed.")
	message.SetString(lang, "verify.redirecting", "Taking you to the next step…")
	message.SetString(lang, "verify.continue", "Continue")
	message.SetString(lang, "verify.fail.heading", "We couldn't verify this link")
	message.SetString(lang, "verify.fail.reason.expired", "This link has expired. Please request a new one.")
	message.SetString(lang, "verify.fail.reason.invalid", "This link is invalid.")
	message.SetString(lang, "verify.fail.reason.already", "This link was already used.")
	message.SetString(lang, "verify.fail.reason.email_mismatch", "This invitation was sent to a different email address.")
	message.SetString(lang, "verify.fail.reason.not_verified", "Verify your email address before accepting this invitation.")
	message.SetString(lang, "verify.fail.reason.server", "Something went wrong on our side. Please try again later.")
	message.SetString(lang, "verify.fail.back_to_login", "Back to sign in")
	message.SetString(lang, "verify.notice.email.success", "Your email is verified.")
	message.SetString(lang, "verify.notice.password_reset.success", "Your reset link is confirmed.")
	message.SetString(lang, "verify.notice.invitation.success", "Invitation verified. Sign in to join.")
	message.SetString(lang, "verify.notice.invitation.accepted", "You joined the organization.")
	message.SetString(lang, "verify.notice.invitation.accept_failed", "We couldn't accept the invitation.")

	// Login
	message.SetString(lang, "login.title", "Sign in")
	message.SetString(lang, "login.email", "Email")
	message.SetString(lang, "login.password", "Password")
	message.SetString(lang, "login.submit", "Sign in")
	message.SetString(lang, "login.signup_link", "Create an account")
	message.SetString(lang, "login.verified_banner", "Your invitation is verified. Sign in to join the organization.")
	message.SetString(lang, "login.error.invalid", "Email or password is incorrect.")
	message.SetString(lang, "login.error.required", "Email and password are required.")
	message.SetString(lang, "login.error.unavailable", "Sign-in is unavailable right now.")
	message.SetString(lang, "auth.notice.signed_out", "You are signed out.")
	message.SetString(lang, "auth.sign_out", "Sign out")

	// Signup
	message.SetString(lang, "signup.title", "Create your account")
	message.SetString(lang, "signup.email", "Email")
	message.SetString(lang, "signup.send", "Send verification email")
	message.SetString(lang, "signup.sent", "We sent a verification link to %s.")
	message.SetString(lang, "signup.verified", "%s is verified. Finish creating your account.")
	message.SetString(lang, "signup.name", "Name")
	message.SetString(lang, "signup.password", "Password")
	message.SetString(lang, "signup.submit", "Create account")
	message.SetString(lang, "signup.cancel", "Start over")
	message.SetString(lang, "signup.notice.created", "Your account is ready. Sign in to continue.")
	message.SetString(lang, "signup.notice.send_failed", "We couldn't send the verification email.")
	message.SetString(lang, "signup.notice.failed", "We couldn't create your account.")
	message.SetString(lang, "signup.notice.cancelled", "Signup cancelled.")
	message.SetString(lang, "signup.error.email_required", "Email is required.")
	message.SetString(lang, "signup.error.not_verified", "Verify your email before creating an account.")
	message.SetString(lang, "signup.error.fields_required", "Name and password are required.")

	// Password reset
	message.SetString(lang, "password.reset.title", "Reset your password")
	message.SetString(lang, "password.reset.body", "Your reset link is confirmed. Choose a new password.")
	message.SetString(lang, "password.reset.missing_token", "This page needs a reset link.")

	// Home
	message.SetString(lang, "home.title", "Home")
	message.SetString(lang, "home.body", "You're signed in.")

	// Organizations
	message.SetString(lang, "orgs.projects.title", "Projects")
	message.SetString(lang, "orgs.projects.body", "Projects of organization %d.")

	// Errors
	message.SetString(lang, "error.title", "Error")
	message.SetString(lang, "error.not_found.heading", "Page not found")
	message.SetString(lang, "error.not_found.body", "The page you are looking for does not exist.")
	message.SetString(lang, "error.server.heading", "Something went wrong")
	message.SetString(lang, "error.server.body", "Please try again in a moment.")
	message.SetString(lang, "error.back_home", "Go home")
	message.SetString(lang, "error.rate_limited", "Too many attempts. Please wait a moment.")
}
