package domain

// LogoutResult is the value outcome of a logout attempt. These are expected,
// user-facing branches, not exceptional conditions, so they are returned as
// values and translated to transport statuses by the handler.
type LogoutResult string

const (
	// LogoutSuccess means the refresh token was found usable and is now
	// revoked and expired.
	LogoutSuccess LogoutResult = "SUCCESS"

	// LogoutTokenNotFound means no stored token matches the presented value.
	LogoutTokenNotFound LogoutResult = "TOKEN_NOT_FOUND"

	// LogoutAlreadyRevoked means the token row exists but was already
	// revoked or expired.
	LogoutAlreadyRevoked LogoutResult = "ALREADY_REVOKED"
)

// ChangePasswordResult is the value outcome of a password change.
type ChangePasswordResult string

const (
	// ChangePasswordSuccess means the hash was replaced and every active
	// refresh token for the user was revoked.
	ChangePasswordSuccess ChangePasswordResult = "SUCCESS"

	// ChangePasswordMismatch means the submitted current password does not
	// match the stored hash.
	ChangePasswordMismatch ChangePasswordResult = "OLD_DO_NOT_MATCH"

	// ChangePasswordNoOp means the new password equals the current one.
	ChangePasswordNoOp ChangePasswordResult = "NEW_MATCH_OLD"

	// ChangePasswordNoPrincipal means no valid bearer context exists.
	ChangePasswordNoPrincipal ChangePasswordResult = "INVALID_HEADER"
)

// ChangeEmailResult is the value outcome of an email change.
type ChangeEmailResult string

const (
	// ChangeEmailSuccess means the email was replaced and every active
	// refresh token for the user was revoked.
	ChangeEmailSuccess ChangeEmailResult = "SUCCESS"

	// ChangeEmailMismatch means the submitted current email does not match
	// the stored one.
	ChangeEmailMismatch ChangeEmailResult = "OLD_DO_NOT_MATCH"

	// ChangeEmailNoOp means the new email equals the current one.
	ChangeEmailNoOp ChangeEmailResult = "NEW_MATCH_OLD"

	// ChangeEmailDuplicate means the new email already belongs to another user.
	ChangeEmailDuplicate ChangeEmailResult = "ALREADY_EXISTS"

	// ChangeEmailNoPrincipal means no valid bearer context exists.
	ChangeEmailNoPrincipal ChangeEmailResult = "INVALID_HEADER"
)
