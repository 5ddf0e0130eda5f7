package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Repositories for the singleton-ish site sections. Each follows the same
// shape: List returns everything (these tables hold a handful of rows),
// Update returns the updated record or ErrNotFound, Delete is idempotent.

type HeaderRepository interface {
	List(ctx context.Context) ([]Header, error)
	Create(ctx context.Context, h Header) (*Header, error)
	Update(ctx context.Context, id int64, h Header) (*Header, error)
	Delete(ctx context.Context, id int64) error
}

type ContactRepository interface {
	List(ctx context.Context) ([]Contact, error)
	Create(ctx context.Context, c Contact) (*Contact, error)
	Update(ctx context.Context, id int64, c Contact) (*Contact, error)
	Delete(ctx context.Context, id int64) error
}

type SlideRepository interface {
	List(ctx context.Context) ([]Slide, error)
	Create(ctx context.Context, s Slide) (*Slide, error)
	Update(ctx context.Context, id int64, s Slide) (*Slide, error)
	Delete(ctx context.Context, id int64) error
}

type AboutRepository interface {
	List(ctx context.Context) ([]About, error)
	Create(ctx context.Context, a About) (*About, error)
	Update(ctx context.Context, id int64, a About) (*About, error)
	Delete(ctx context.Context, id int64) error
}

type SpecialtyRepository interface {
	List(ctx context.Context) ([]Specialty, error)
	Create(ctx context.Context, s Specialty) (*Specialty, error)
	Update(ctx context.Context, id int64, s Specialty) (*Specialty, error)
	Delete(ctx context.Context, id int64) error
}

type FooterRepository interface {
	List(ctx context.Context) ([]Footer, error)
	Create(ctx context.Context, f Footer) (*Footer, error)
	Update(ctx context.Context, id int64, f Footer) (*Footer, error)
	Delete(ctx context.Context, id int64) error
}

// --- headers ---

type PgHeaderRepository struct {
	db PgxPool
}

func NewPgHeaderRepository(db PgxPool) *PgHeaderRepository {
	return &PgHeaderRepository{db: db}
}

func (r *PgHeaderRepository) List(ctx context.Context) ([]Header, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, phone, whatsapp, email, logo, social_links, created_at, updated_at
FROM headers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Header, 0, 4)
	for rows.Next() {
		var h Header
		if err := rows.Scan(&h.ID, &h.Phone, &h.Whatsapp, &h.Email, &h.Logo, &h.SocialLinks, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		if h.SocialLinks == nil {
			h.SocialLinks = []string{}
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

func (r *PgHeaderRepository) Create(ctx context.Context, h Header) (*Header, error) {
	const q = `
INSERT INTO headers (phone, whatsapp, email, logo, social_links)
VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at, updated_at`
	if h.SocialLinks == nil {
		h.SocialLinks = []string{}
	}
	if err := r.db.QueryRow(ctx, q, h.Phone, h.Whatsapp, h.Email, h.Logo, h.SocialLinks).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PgHeaderRepository) Update(ctx context.Context, id int64, h Header) (*Header, error) {
	const q = `
UPDATE headers SET phone=$1, whatsapp=$2, email=$3, logo=$4, social_links=$5, updated_at=now()
WHERE id=$6 RETURNING id, created_at, updated_at`
	if h.SocialLinks == nil {
		h.SocialLinks = []string{}
	}
	if err := r.db.QueryRow(ctx, q, h.Phone, h.Whatsapp, h.Email, h.Logo, h.SocialLinks, id).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *PgHeaderRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM headers WHERE id=$1`, id)
	return err
}

// --- contacts ---

type PgContactRepository struct {
	db PgxPool
}

func NewPgContactRepository(db PgxPool) *PgContactRepository {
	return &PgContactRepository{db: db}
}

func (r *PgContactRepository) List(ctx context.Context) ([]Contact, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, address, phone, whatsapp, email, opening_hours, created_at, updated_at
FROM contacts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Contact, 0, 4)
	for rows.Next() {
		var ct Contact
		if err := rows.Scan(&ct.ID, &ct.Address, &ct.Phone, &ct.Whatsapp, &ct.Email, &ct.OpeningHours, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, ct)
	}
	return items, rows.Err()
}

func (r *PgContactRepository) Create(ctx context.Context, ct Contact) (*Contact, error) {
	const q = `
INSERT INTO contacts (address, phone, whatsapp, email, opening_hours)
VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, ct.Address, ct.Phone, ct.Whatsapp, ct.Email, ct.OpeningHours).Scan(&ct.ID, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *PgContactRepository) Update(ctx context.Context, id int64, ct Contact) (*Contact, error) {
	const q = `
UPDATE contacts SET address=$1, phone=$2, whatsapp=$3, email=$4, opening_hours=$5, updated_at=now()
WHERE id=$6 RETURNING id, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, ct.Address, ct.Phone, ct.Whatsapp, ct.Email, ct.OpeningHours, id).Scan(&ct.ID, &ct.CreatedAt, &ct.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ct, nil
}

func (r *PgContactRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	return err
}

// --- slides ---

type PgSlideRepository struct {
	db PgxPool
}

func NewPgSlideRepository(db PgxPool) *PgSlideRepository {
	return &PgSlideRepository{db: db}
}

func (r *PgSlideRepository) List(ctx context.Context) ([]Slide, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, title, subtitle, image, button_text, button_link, position, created_at, updated_at
FROM slides ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Slide, 0, 8)
	for rows.Next() {
		var s Slide
		if err := rows.Scan(&s.ID, &s.Title, &s.Subtitle, &s.Image, &s.ButtonText, &s.ButtonLink, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *PgSlideRepository) Create(ctx context.Context, s Slide) (*Slide, error) {
	const q = `
INSERT INTO slides (title, subtitle, image, button_text, button_link, position)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, s.Title, s.Subtitle, s.Image, s.ButtonText, s.ButtonLink, s.Position).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgSlideRepository) Update(ctx context.Context, id int64, s Slide) (*Slide, error) {
	const q = `
UPDATE slides SET title=$1, subtitle=$2, image=$3, button_text=$4, button_link=$5, position=$6, updated_at=now()
WHERE id=$7 RETURNING id, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, s.Title, s.Subtitle, s.Image, s.ButtonText, s.ButtonLink, s.Position, id).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PgSlideRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM slides WHERE id=$1`, id)
	return err
}

// --- about sections ---

type PgAboutRepository struct {
	db PgxPool
}

func NewPgAboutRepository(db PgxPool) *PgAboutRepository {
	return &PgAboutRepository{db: db}
}

func (r *PgAboutRepository) List(ctx context.Context) ([]About, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, title, body, image, created_at, updated_at
FROM about_sections ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]About, 0, 4)
	for rows.Next() {
		var a About
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Image, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *PgAboutRepository) Create(ctx context.Context, a About) (*About, error) {
	const q = `
INSERT INTO about_sections (title, body, image)
VALUES ($1,$2,$3) RETURNING id, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, a.Title, a.Body, a.Image).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgAboutRepository) Update(ctx context.Context, id int64, a About) (*About, error) {
	const q = `
UPDATE about_sections SET title=$1, body=$2, image=$3, updated_at=now()
WHERE id=$4 RETURNING id, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, a.Title, a.Body, a.Image, id).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PgAboutRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM about_sections WHERE id=$1`, id)
	return err
}

// --- specialties ---

type PgSpecialtyRepository struct {
	db PgxPool
}

func NewPgSpecialtyRepository(db PgxPool) *PgSpecialtyRepository {
	return &PgSpecialtyRepository{db: db}
}

func (r *PgSpecialtyRepository) List(ctx context.Context) ([]Specialty, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, name, description, icon, created_at, updated_at
FROM specialties ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Specialty, 0, 8)
	for rows.Next() {
		var s Specialty
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Icon, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *PgSpecialtyRepository) Create(ctx context.Context, s Specialty) (*Specialty, error) {
	const q = `
INSERT INTO specialties (name, description, icon)
VALUES ($1,$2,$3) RETURNING id, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, s.Name, s.Description, s.Icon).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgSpecialtyRepository) Update(ctx context.Context, id int64, s Specialty) (*Specialty, error) {
	const q = `
UPDATE specialties SET name=$1, description=$2, icon=$3, updated_at=now()
WHERE id=$4 RETURNING id, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, s.Name, s.Description, s.Icon, id).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PgSpecialtyRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM specialties WHERE id=$1`, id)
	return err
}

// --- footers ---

type PgFooterRepository struct {
	db PgxPool
}

func NewPgFooterRepository(db PgxPool) *PgFooterRepository {
	return &PgFooterRepository{db: db}
}

func (r *PgFooterRepository) List(ctx context.Context) ([]Footer, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, text, email, social_links, created_at, updated_at
FROM footers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Footer, 0, 4)
	for rows.Next() {
		var f Footer
		if err := rows.Scan(&f.ID, &f.Text, &f.Email, &f.SocialLinks, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		if f.SocialLinks == nil {
			f.SocialLinks = []string{}
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

func (r *PgFooterRepository) Create(ctx context.Context, f Footer) (*Footer, error) {
	const q = `
INSERT INTO footers (text, email, social_links)
VALUES ($1,$2,$3) RETURNING id, created_at, updated_at`
	if f.SocialLinks == nil {
		f.SocialLinks = []string{}
	}
	if err := r.db.QueryRow(ctx, q, f.Text, f.Email, f.SocialLinks).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PgFooterRepository) Update(ctx context.Context, id int64, f Footer) (*Footer, error) {
	const q = `
UPDATE footers SET text=$1, email=$2, social_links=$3, updated_at=now()
WHERE id=$4 RETURNING id, created_at, updated_at`
	if f.SocialLinks == nil {
		f.SocialLinks = []string{}
	}
	if err := r.db.QueryRow(ctx, q, f.Text, f.Email, f.SocialLinks, id).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PgFooterRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM footers WHERE id=$1`, id)
	return err
}
