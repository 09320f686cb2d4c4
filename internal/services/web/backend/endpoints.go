package backend

// Backend REST paths.
const (
	PathEmailVerification      = "/api/auth/email-verification"
	PathPasswordVerification   = "/api/auth/password/verification"
	PathInvitationVerification = "/api/organizations/invitations/verification"
	PathInvitationAccept       = "/api/organizations/invitations/accept"
	PathSignIn                 = "/api/auth/signin"
	PathTokenRefresh           = "/api/auth/token/refresh"
	PathSignOut                = "/api/auth/signout"
	PathSignUp                 = "/api/auth/signup"
)
