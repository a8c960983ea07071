package uri

import (
	"strings"

	"github.com/ghettovoice/gohttp/internal/grammar"
	"github.com/ghettovoice/gohttp/internal/util"
)

// UserInfo is a container for user credentials of a [URI].
type UserInfo struct {
	usrname, passwd string
	hasPasswd       bool
}

// User returns a [UserInfo] containing the provided username and no password.
func User(usrname string) UserInfo {
	return UserInfo{usrname: usrname}
}

// UserPassword returns a [UserInfo] containing the provided username and password.
func UserPassword(usrname, passwd string) UserInfo {
	return UserInfo{usrname: usrname, passwd: passwd, hasPasswd: true}
}

// Username returns the username from the UserInfo.
func (ui UserInfo) Username() string { return ui.usrname }

// Password returns the password, in case it is set, and a bool flag indicating whether it is set.
func (ui UserInfo) Password() (string, bool) { return ui.passwd, ui.hasPasswd }

// IsZero checks whether the UserInfo is empty.
func (ui UserInfo) IsZero() bool { return ui.usrname == "" && ui.passwd == "" && !ui.hasPasswd }

// String returns the percent-encoded "user[:password]" form of the UserInfo.
// Encoding is idempotent: already escaped input is left as is.
func (ui UserInfo) String() string {
	if ui.IsZero() {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(grammar.Escape(ui.usrname, shouldEscapeUserInfoChar))
	if ui.hasPasswd {
		sb.WriteString(":")
		sb.WriteString(grammar.Escape(ui.passwd, shouldEscapeUserInfoChar))
	}
	return sb.String()
}

// User returns the percent-decoded userinfo of the URI as a [UserInfo]
// value, the inverse of [URI.WithUserInfo].
func (u *URI) User() UserInfo {
	ui := u.UserInfo()
	if ui == "" {
		return UserInfo{}
	}
	if i := strings.IndexByte(ui, ':'); i >= 0 {
		return UserPassword(grammar.Unescape(ui[:i]), grammar.Unescape(ui[i+1:]))
	}
	return User(grammar.Unescape(ui))
}

// Equal compares this UserInfo with another for equality.
func (ui UserInfo) Equal(val any) bool {
	var other UserInfo
	switch v := val.(type) {
	case UserInfo:
		other = v
	case *UserInfo:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return ui.usrname == other.usrname && ui.passwd == other.passwd && ui.hasPasswd == other.hasPasswd
}
