package auth

import (
	"crypto/subtle"
	"strings"
)

// AdminAccount is one statically configured dashboard login. The account
// list lives in configuration and never changes at runtime.
type AdminAccount struct {
	Username string
	Password string
	Role     string
}

// ParseAdminList parses the ADMIN_CREDENTIALS format:
// "username:password[:role]" entries separated by commas. Entries without a
// role default to "admin". Malformed entries are skipped.
func ParseAdminList(raw string) []AdminAccount {
	var accounts []AdminAccount
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		account := AdminAccount{Username: parts[0], Password: parts[1], Role: "admin"}
		if len(parts) == 3 && parts[2] != "" {
			account.Role = parts[2]
		}
		accounts = append(accounts, account)
	}
	return accounts
}

// Credentials answers login attempts against the static account list.
type Credentials struct {
	accounts []AdminAccount
}

func NewCredentials(accounts []AdminAccount) Credentials {
	return Credentials{accounts: accounts}
}

// Authenticate returns the matching account for a username/password pair.
func (c Credentials) Authenticate(username, password string) (AdminAccount, bool) {
	for _, account := range c.accounts {
		userOK := subtle.ConstantTimeCompare([]byte(account.Username), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(account.Password), []byte(password)) == 1
		if userOK && passOK {
			return account, true
		}
	}
	return AdminAccount{}, false
}
