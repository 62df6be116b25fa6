package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PaulFidika/sregkit/sreg"
)

// Store persists the last registration profile asserted for each user.
type Store struct {
	pg     *pgxpool.Pool
	schema string
}

// NewStore returns a store on schema, "profiles" when blank. The bundled
// migration creates only profiles.sreg_profiles; other schemas need the table
// created separately.
func NewStore(pg *pgxpool.Pool, schema string) *Store {
	s := strings.TrimSpace(schema)
	if s == "" {
		s = "profiles"
	}
	return &Store{pg: pg, schema: s}
}

func (s *Store) profilesTable() string { return s.schema + ".sreg_profiles" }

// SaveProfile upserts r for userID. The birthdate is stored in its wire form so
// unresolved provider values survive a round trip.
func (s *Store) SaveProfile(ctx context.Context, userID uuid.UUID, r *sreg.Response) error {
	if s.pg == nil || userID == uuid.Nil || r == nil {
		return nil
	}
	var gender *string
	if code := r.Gender.Code(); code != "" {
		gender = &code
	}
	_, err := s.pg.Exec(ctx, `INSERT INTO `+s.profilesTable()+`
		(user_id, type_uri, nickname, email, fullname, dob, gender, postcode, country, language, timezone, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			type_uri=EXCLUDED.type_uri, nickname=EXCLUDED.nickname, email=EXCLUDED.email,
			fullname=EXCLUDED.fullname, dob=EXCLUDED.dob, gender=EXCLUDED.gender,
			postcode=EXCLUDED.postcode, country=EXCLUDED.country, language=EXCLUDED.language,
			timezone=EXCLUDED.timezone, updated_at=NOW()`,
		userID, r.TypeURI(), r.Nickname, r.Email, r.FullName, r.BirthDateRaw(), gender,
		r.PostalCode, r.Country, r.Language, r.TimeZone)
	return err
}

// GetProfile returns the stored profile, or nil when none exists.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*sreg.Response, error) {
	if s.pg == nil || userID == uuid.Nil {
		return nil, nil
	}
	var (
		typeURI     string
		dob, gender *string
	)
	r := sreg.NewResponse("")
	err := s.pg.QueryRow(ctx, `SELECT type_uri, nickname, email, fullname, dob, gender, postcode, country, language, timezone
		FROM `+s.profilesTable()+` WHERE user_id=$1 LIMIT 1`, userID).
		Scan(&typeURI, &r.Nickname, &r.Email, &r.FullName, &dob, &gender, &r.PostalCode, &r.Country, &r.Language, &r.TimeZone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rebuild(typeURI, r, dob, gender)
}

// DeleteProfile removes the stored profile for userID.
func (s *Store) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	if s.pg == nil || userID == uuid.Nil {
		return nil
	}
	_, err := s.pg.Exec(ctx, `DELETE FROM `+s.profilesTable()+` WHERE user_id=$1`, userID)
	return err
}

// rebuild binds scanned columns to a response under typeURI, running the
// birthdate and gender values back through their codecs.
func rebuild(typeURI string, scanned *sreg.Response, dob, gender *string) (*sreg.Response, error) {
	out := sreg.NewResponse(typeURI)
	out.Nickname, out.Email, out.FullName = scanned.Nickname, scanned.Email, scanned.FullName
	out.PostalCode, out.Country, out.Language, out.TimeZone = scanned.PostalCode, scanned.Country, scanned.Language, scanned.TimeZone
	fields := map[string]string{}
	if dob != nil {
		fields[sreg.FieldBirthDate] = *dob
	}
	if gender != nil {
		fields[sreg.FieldGender] = *gender
	}
	if err := out.DecodeFields(fields); err != nil {
		return nil, err
	}
	return out, nil
}
