package errors

const (
	InvalidTokenError         = "Token is invalid"
	InvalidUserTokenError     = "Invalid user token"
	ExpiredTokenError         = "Verification token has expired"
	EmailAlreadyExist         = "Email already exists in database"
	InvalidCredentials        = "Invalid email or password"
	NotVerifiedUser           = "User wasn't verified yet"
	InvalidResendMailError    = "Invalid resend mail"
	NotFoundMailError         = "Mail doesn't exist"
	NotMatchingPasswordsError = "Passwords don't match"
	InvalidRequestFormatError = "Invalid request format"
	UnauthenticatedError      = "No authenticated user"
	ImmutableProfileField     = "Profile field cannot be changed"
	NotFoundUserError         = "User doesn't exist"
	RoomNotAvailableError     = "Room is not available"
	PropertyNotFoundError     = "Property doesn't exist"
)
