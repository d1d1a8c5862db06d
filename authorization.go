package datasystem

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/airdatahq/datasystem/app"
)

//AuthorizeFlag is a capability bitset. Flags combine with bitwise OR and a
//token is usable for an operation when the required bit is set, so holding
//Write does not imply Read.
type AuthorizeFlag int

const (
	FlagNone AuthorizeFlag = 1 << iota
	FlagRead
	FlagWrite
	FlagDelete
)

var flagNames = map[string]AuthorizeFlag{
	"none":   FlagNone,
	"read":   FlagRead,
	"write":  FlagWrite,
	"delete": FlagDelete,
}

func (f AuthorizeFlag) Has(required AuthorizeFlag) bool {
	return f&required != 0
}

func (f AuthorizeFlag) String() string {
	names := []string{}
	for _, name := range []string{"none", "read", "write", "delete"} {
		if f.Has(flagNames[name]) {
			names = append(names, name)
		}
	}

	return strings.Join(names, ",")
}

//ParseAuthorizeFlags parses a comma separated flag list, e.g. "read,write"
func ParseAuthorizeFlags(s string) (AuthorizeFlag, error) {
	var flags AuthorizeFlag

	for _, name := range strings.Split(s, ",") {
		flag, ok := flagNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown authorize flag: %s", name)
		}
		flags |= flag
	}

	return flags, nil
}

type Authorization struct {
	Id      uint64        `db:"id" json:"id"`
	Token   string        `db:"token" json:"token"`
	Locked  bool          `db:"locked" json:"locked"`
	Flags   AuthorizeFlag `db:"flags" json:"flags"`
	Created time.Time     `db:"created" json:"created"`
}

//FlagCriteria matches rows whose flag bitset has the required bit set. Bitwise
//AND, not equality, so a token with several flags still matches a single-flag
//check.
type FlagCriteria AuthorizeFlag

func (f FlagCriteria) ParseCriteria(sb *squirrel.SelectBuilder) error {
	if f == 0 {
		return nil
	}

	*sb = sb.Where(squirrel.Expr("flags & ? != 0", int(f)))
	return nil
}

type AuthorizationCriteria struct {
	Id      uint64       `schema:"id" db:"id"`
	Token   string       `schema:"token" db:"token"`
	Locked  *bool        `schema:"locked" db:"locked"`
	HasFlag FlagCriteria `schema:"-"`

	OrderBy string `schema:"-"`
	Limit   int    `schema:"limit"`
}

type Authorizations struct {
	db *app.Database
}

func NewAuthorizations(ds *DataSystem) *Authorizations {
	return &Authorizations{ds.Database}
}

//Check validates a caller supplied token against the stored authorizations and
//the required capability flag. It runs exactly once per request and is never
//cached, so lock and flag changes take effect on the next request. A token that
//does not parse fails without a store lookup.
func (as *Authorizations) Check(token string, required AuthorizeFlag) (*Authorization, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	unlocked := false
	var a Authorization
	if err := as.db.MatchOne(&a, "authorizations", AuthorizationCriteria{
		Token:   parsed.String(),
		Locked:  &unlocked,
		HasFlag: FlagCriteria(required),
	}); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return &a, nil
}

func (as *Authorizations) List(c AuthorizationCriteria) ([]Authorization, error) {
	var list []Authorization
	if err := as.db.Match(&list, "authorizations", c); err != nil {
		return nil, err
	}

	return list, nil
}

func (as *Authorizations) Get(c AuthorizationCriteria) (*Authorization, error) {
	var a Authorization
	if err := as.db.MatchOne(&a, "authorizations", c); err != nil {
		return nil, err
	}

	return &a, nil
}

//Create issues a new token. This is an administrative action, request handling
//never mutates authorizations.
func (as *Authorizations) Create(flags AuthorizeFlag) (*Authorization, error) {
	a := Authorization{
		Token:   uuid.New().String(),
		Locked:  false,
		Flags:   flags,
		Created: time.Now().UTC(),
	}

	if err := as.db.Insert(&a, "authorizations"); err != nil {
		return nil, err
	}

	return &a, nil
}

func (as *Authorizations) SetLocked(token string, locked bool) error {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid token: %s", token)
	}

	result, err := as.db.Exec("UPDATE authorizations SET locked = ? WHERE token = ?", locked, parsed.String())
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("token not found: %s", token)
	}

	return nil
}
