package core

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// BootstrapAdmin creates an initial account when the user table is empty.
// It is idempotent: if any account already exists, it does nothing.
func BootstrapAdmin(ctx context.Context, repo UserRepository, hasher PasswordHasher, cfg Config) error {
	if !cfg.BootstrapAdminEnabled {
		return nil
	}

	has, err := repo.HasAny(ctx)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	username := "admin"
	password, err := generatePassword(32)
	if err != nil {
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	if _, err := repo.Create(ctx, username, hash); err != nil {
		return err
	}

	if cfg.InitialAdminPasswordPath != "" {
		if err := os.WriteFile(cfg.InitialAdminPasswordPath, []byte(password+"\n"), 0o600); err != nil {
			return err
		}
		log.Printf("initial admin created; credentials written to %s", cfg.InitialAdminPasswordPath)
	} else {
		log.Printf("initial admin created username=%s password=%s", username, password)
	}

	return nil
}

func generatePassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}
	// base64 encoding: need 3/4 overhead; ensure enough bytes
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}

// seedFile is the YAML shape of an initial-content file.
type seedFile struct {
	Header *struct {
		Phone       string   `yaml:"phone"`
		Whatsapp    string   `yaml:"whatsapp"`
		Email       string   `yaml:"email"`
		Logo        string   `yaml:"logo"`
		SocialLinks []string `yaml:"socialLinks"`
	} `yaml:"header"`
	About []struct {
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
		Image string `yaml:"image"`
	} `yaml:"about"`
	Footer *struct {
		Text        string   `yaml:"text"`
		Email       string   `yaml:"email"`
		SocialLinks []string `yaml:"socialLinks"`
	} `yaml:"footer"`
}

// SeedContent loads initial site content from the configured YAML file. It
// only runs against an empty site (no header rows), so redeploys never
// overwrite edited content.
func SeedContent(ctx context.Context, cfg Config, headers HeaderRepository, about AboutRepository, footers FooterRepository) error {
	if cfg.SeedContentPath == "" {
		return nil
	}

	existing, err := headers.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	raw, err := os.ReadFile(cfg.SeedContentPath)
	if err != nil {
		return err
	}
	seed, err := parseSeed(raw)
	if err != nil {
		return err
	}

	if seed.Header != nil {
		if _, err := headers.Create(ctx, Header{
			Phone:       seed.Header.Phone,
			Whatsapp:    seed.Header.Whatsapp,
			Email:       seed.Header.Email,
			Logo:        seed.Header.Logo,
			SocialLinks: seed.Header.SocialLinks,
		}); err != nil {
			return err
		}
	}
	for _, a := range seed.About {
		if _, err := about.Create(ctx, About{Title: a.Title, Body: a.Body, Image: a.Image}); err != nil {
			return err
		}
	}
	if seed.Footer != nil {
		if _, err := footers.Create(ctx, Footer{
			Text:        seed.Footer.Text,
			Email:       seed.Footer.Email,
			SocialLinks: seed.Footer.SocialLinks,
		}); err != nil {
			return err
		}
	}

	log.Printf("seeded initial site content from %s", cfg.SeedContentPath)
	return nil
}

func parseSeed(raw []byte) (*seedFile, error) {
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, err
	}
	if seed.Header != nil {
		h := seed.Header
		if h.Phone == "" || h.Whatsapp == "" || h.Email == "" || h.Logo == "" {
			return nil, errors.New("seed header: phone, whatsapp, email and logo are required")
		}
	}
	return &seed, nil
}
