package account

import (
	"net/url"
	"strings"
)

// ChangePasswordPath is where users with a pending mandatory rotation are
// sent before they may use the rest of the app.
const ChangePasswordPath = "/change-password"

// DeterminePasswordRedirect decides whether a user at pathname must be
// redirected to the change-password page. It returns "" (no redirect) while
// the session is still loading, when no rotation is pending, when the path
// is unknown, or when the user is already under ChangePasswordPath — that
// last check is what breaks redirect loops. Otherwise the target carries
// the original path URL-encoded in the next parameter so the user can be
// returned there afterwards.
func DeterminePasswordRedirect(loading, mustChangePassword bool, pathname string) string {
	if loading || !mustChangePassword {
		return ""
	}
	if pathname == "" || strings.HasPrefix(pathname, ChangePasswordPath) {
		return ""
	}
	return ChangePasswordPath + "?next=" + url.QueryEscape(pathname)
}
