package services

import (
	"context"
	"fmt"

	"dashformance/leads-api/internal/dto"
	"dashformance/leads-api/internal/normalize"
)

type keySet map[string]struct{}

func (s keySet) has(key string) bool {
	if key == "" {
		return false
	}
	_, ok := s[key]
	return ok
}

func (s keySet) add(key string) {
	if key != "" {
		s[key] = struct{}{}
	}
}

// storedKeys is what one page learned about the leads already in storage
type storedKeys struct {
	cnpjs         keySet
	emails        keySet
	checkedEmails keySet
	phones        keySet
	phonesLoaded  bool
}

// dedupIndex rejects registry records that already exist in storage or that
// were accepted earlier in the same extraction run. It lives for one run only.
type dedupIndex struct {
	store LeadStore

	cnpjs  keySet
	emails keySet
	phones keySet
}

func newDedupIndex(store LeadStore) *dedupIndex {
	return &dedupIndex{
		store:  store,
		cnpjs:  keySet{},
		emails: keySet{},
		phones: keySet{},
	}
}

// filterPage returns the records of a page that are new to both storage and the run.
// Storage is queried once per key kind: CNPJ set, email set, and a full scan of active phones.
func (d *dedupIndex) filterPage(ctx context.Context, results []dto.Company) ([]dto.Company, *storedKeys, error) {
	stored := &storedKeys{
		cnpjs:         keySet{},
		emails:        keySet{},
		checkedEmails: keySet{},
		phones:        keySet{},
	}

	var cnpjs, emails []string
	hasPhones := false
	for _, c := range results {
		if cnpj := c.CNPJ(); cnpj != "" {
			cnpjs = append(cnpjs, cnpj)
		}
		if email := normalize.EmailKey(c.FirstEmail()); email != "" {
			emails = append(emails, email)
		}
		if normalize.PhoneKey(c.FirstPhone()) != "" {
			hasPhones = true
		}
	}

	if len(cnpjs) > 0 {
		existing, err := d.store.ExistingCNPJs(ctx, cnpjs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing cnpjs: %w", err)
		}
		stored.cnpjs = existing
	}

	if err := d.lookupEmails(ctx, stored, emails); err != nil {
		return nil, nil, err
	}

	if hasPhones {
		if err := d.loadPhones(ctx, stored); err != nil {
			return nil, nil, err
		}
	}

	// a record repeating a key of an earlier record on the same page is a duplicate too
	page := &dedupIndex{cnpjs: keySet{}, emails: keySet{}, phones: keySet{}}
	fresh := make([]dto.Company, 0, len(results))
	for _, c := range results {
		cnpj := c.CNPJ()
		email := normalize.EmailKey(c.FirstEmail())
		phone := normalize.PhoneKey(c.FirstPhone())
		if d.seen(stored, cnpj, email, phone) || page.seen(stored, cnpj, email, phone) {
			continue
		}
		page.cnpjs.add(cnpj)
		page.emails.add(email)
		page.phones.add(phone)
		fresh = append(fresh, c)
	}
	return fresh, stored, nil
}

// refresh extends stored with lookups for contact data that only appeared after enrichment
func (d *dedupIndex) refresh(ctx context.Context, stored *storedKeys, leads []dto.LeadInput) error {
	var emails []string
	hasPhones := false
	for _, lead := range leads {
		if email := normalize.EmailKeyPtr(lead.Email); email != "" && !stored.checkedEmails.has(email) {
			emails = append(emails, email)
		}
		if normalize.PhoneKeyPtr(lead.Phone) != "" {
			hasPhones = true
		}
	}

	if err := d.lookupEmails(ctx, stored, emails); err != nil {
		return err
	}
	if hasPhones && !stored.phonesLoaded {
		return d.loadPhones(ctx, stored)
	}
	return nil
}

// accept admits a lead into the run unless one of its keys is already taken
func (d *dedupIndex) accept(stored *storedKeys, lead dto.LeadInput) bool {
	cnpj := lead.CNPJ
	email := normalize.EmailKeyPtr(lead.Email)
	phone := normalize.PhoneKeyPtr(lead.Phone)

	if d.seen(stored, cnpj, email, phone) {
		return false
	}

	d.cnpjs.add(cnpj)
	d.emails.add(email)
	d.phones.add(phone)
	return true
}

func (d *dedupIndex) seen(stored *storedKeys, cnpj, email, phone string) bool {
	if stored.cnpjs.has(cnpj) || d.cnpjs.has(cnpj) {
		return true
	}
	if stored.emails.has(email) || d.emails.has(email) {
		return true
	}
	return stored.phones.has(phone) || d.phones.has(phone)
}

func (d *dedupIndex) lookupEmails(ctx context.Context, stored *storedKeys, emails []string) error {
	if len(emails) == 0 {
		return nil
	}
	existing, err := d.store.ExistingEmails(ctx, emails)
	if err != nil {
		return fmt.Errorf("failed to check existing emails: %w", err)
	}
	for _, email := range emails {
		stored.checkedEmails.add(email)
	}
	for email := range existing {
		stored.emails.add(normalize.Email(email))
	}
	return nil
}

func (d *dedupIndex) loadPhones(ctx context.Context, stored *storedKeys) error {
	phones, err := d.store.ActivePhones(ctx)
	if err != nil {
		return fmt.Errorf("failed to load existing phones: %w", err)
	}
	for _, phone := range phones {
		stored.phones.add(normalize.PhoneKey(phone))
	}
	stored.phonesLoaded = true
	return nil
}
