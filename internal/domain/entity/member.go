package entity

import (
	"net/netip"
	"net/url"
	"time"

	errs "github.com/rakapradana/member-gateway/internal/domain/error"
	coreport "github.com/rakapradana/member-gateway/internal/domain/port/core"
)

// Name policy: 4-10 characters, strictly alphanumeric. PIN is exactly six
// digits. Password is checked by length only (6-10 characters).
const (
	MemberNameMinLen = 4
	MemberNameMaxLen = 10
	MemberPINLen     = 6
	PasswordMinLen   = 6
	PasswordMaxLen   = 10
)

// Member represents an external transacting party holding a balance.
type Member struct {
	ID          uint64
	Name        string
	IPAddress   string
	URLReport   string // optional; empty means responses go back to IPAddress
	PIN         string
	Password    string
	IsActive    bool
	AllowNoSign bool
	balance     int64 // cents, never negative
	CreatedAt   time.Time
}

// MemberParams carries the validated input for NewMember.
type MemberParams struct {
	Name         string
	IPAddress    string
	URLReport    string
	PIN          string
	Password     string
	IsActive     bool
	AllowNoSign  bool
	BalanceCents int64
}

// NewMember validates params and builds a member entity. The ID is zero
// until the store assigns one.
func NewMember(params MemberParams, timeProvider coreport.TimeProvider) (*Member, error) {
	if err := ValidateMemberName(params.Name); err != nil {
		return nil, err
	}
	if err := ValidateIPAddress(params.IPAddress); err != nil {
		return nil, err
	}
	if err := ValidateURLReport(params.URLReport); err != nil {
		return nil, err
	}
	if err := ValidatePIN(params.PIN); err != nil {
		return nil, err
	}
	if err := ValidatePassword(params.Password); err != nil {
		return nil, err
	}
	if params.BalanceCents < 0 {
		return nil, errs.NewValidation("balance", "balance cannot be negative")
	}

	return &Member{
		Name:        params.Name,
		IPAddress:   params.IPAddress,
		URLReport:   params.URLReport,
		PIN:         params.PIN,
		Password:    params.Password,
		IsActive:    params.IsActive,
		AllowNoSign: params.AllowNoSign,
		balance:     params.BalanceCents,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// Balance returns the current balance in cents
func (m *Member) Balance() int64 {
	return m.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (m *Member) FormattedBalance() string {
	return FormatCents(m.balance)
}

// SetBalanceCents sets the balance directly. For repository hydration only.
func (m *Member) SetBalanceCents(cents int64) {
	m.balance = cents
}

// CanDeduct reports whether the balance covers a debit of the given cents
func (m *Member) CanDeduct(cents int64) bool {
	return m.balance >= cents
}

// ApplyCredit adds cents to the balance
func (m *Member) ApplyCredit(cents int64) {
	m.balance += cents
}

// ApplyDebit subtracts cents from the balance, failing when the balance
// would go negative.
func (m *Member) ApplyDebit(cents int64) error {
	if m.balance < cents {
		return errs.NewInsufficientBalance(m.ID, FormatCents(m.balance), FormatCents(cents))
	}
	m.balance -= cents
	return nil
}

// MemberKeys is the identity triple every cache entry for a member is
// derived from. Callers must capture it before mutating the entity.
type MemberKeys struct {
	ID        uint64
	Name      string
	IPAddress string
}

// Keys snapshots the identity fields used for cache derivation
func (m *Member) Keys() MemberKeys {
	return MemberKeys{ID: m.ID, Name: m.Name, IPAddress: m.IPAddress}
}

// MemberPatch carries a partial update. Nil fields are left untouched;
// nil is never conflated with a zero value.
type MemberPatch struct {
	Name        *string
	IPAddress   *string
	URLReport   *string
	PIN         *string
	Password    *string
	IsActive    *bool
	AllowNoSign *bool
}

// Validate checks every field present in the patch
func (p MemberPatch) Validate() error {
	if p.Name != nil {
		if err := ValidateMemberName(*p.Name); err != nil {
			return err
		}
	}
	if p.IPAddress != nil {
		if err := ValidateIPAddress(*p.IPAddress); err != nil {
			return err
		}
	}
	if p.URLReport != nil {
		if err := ValidateURLReport(*p.URLReport); err != nil {
			return err
		}
	}
	if p.PIN != nil {
		if err := ValidatePIN(*p.PIN); err != nil {
			return err
		}
	}
	if p.Password != nil {
		if err := ValidatePassword(*p.Password); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether the patch carries no fields at all
func (p MemberPatch) Empty() bool {
	return p.Name == nil && p.IPAddress == nil && p.URLReport == nil &&
		p.PIN == nil && p.Password == nil && p.IsActive == nil && p.AllowNoSign == nil
}

// ValidateMemberName checks the 4-10 alphanumeric name rule
func ValidateMemberName(name string) error {
	if len(name) < MemberNameMinLen || len(name) > MemberNameMaxLen {
		return errs.NewValidation("name", "name must be between 4 and 10 characters")
	}
	for _, r := range name {
		if !isAlphanumeric(r) {
			return errs.NewValidation("name", "name must be alphanumeric")
		}
	}
	return nil
}

// ValidateIPAddress checks for a valid IPv4 or IPv6 address
func ValidateIPAddress(ip string) error {
	if _, err := netip.ParseAddr(ip); err != nil {
		return errs.NewValidation("ipaddress", "ipaddress must be a valid IPv4 or IPv6 address")
	}
	return nil
}

// ValidateURLReport checks an optional absolute http(s) URL
func ValidateURLReport(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValidation("urlreport", "urlreport must be a valid URL")
	}
	return nil
}

// ValidatePIN checks for exactly six numeric digits
func ValidatePIN(pin string) error {
	if len(pin) != MemberPINLen {
		return errs.NewValidation("pin", "pin must be a 6-digit number")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return errs.NewValidation("pin", "pin must be a 6-digit number")
		}
	}
	return nil
}

// ValidatePassword checks the 6-10 character length rule
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLen || len(password) > PasswordMaxLen {
		return errs.NewValidation("password", "password must be between 6 and 10 characters")
	}
	return nil
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
