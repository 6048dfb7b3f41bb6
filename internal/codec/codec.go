// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec turns typed domain payloads into encrypted entities and back.
//
// The encrypted plaintext is a tagged envelope:
//
//	{"kind":"journal","v":1,"data":{...}}
//
// Decoding checks the tag against the requested payload type, rejects unknown
// fields and runs the payload's own validation, so a malformed record fails
// with *errs.ValidationError instead of producing a half-filled struct.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/daybook/internal/crypto"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

const envelopeVersion = 1

// Payload is the encrypted part of an entity.
type Payload interface {
	Kind() models.EntityKind
	Validate() error
}

// Record is anything stored with an encrypted entity inside it.
type Record interface {
	Entity() models.EncryptedEntity
}

// EntityMeta holds the plaintext identity of a new encrypted entity.
type EntityMeta struct {
	ID       string
	UserID   string
	PeriodID *string
}

type envelope struct {
	Kind models.EntityKind `json:"kind"`
	V    int               `json:"v"`
	Data json.RawMessage   `json:"data"`
}

// Codec encrypts and decrypts payloads with the session's encryption service.
type Codec struct {
	cipher crypto.EncryptionService
	logger *logger.Logger
}

// New returns a Codec bound to cipher.
func New(cipher crypto.EncryptionService, logger *logger.Logger) *Codec {
	return &Codec{cipher: cipher, logger: logger}
}

// EncryptData validates payload, drops excludeFields (top-level JSON keys),
// wraps the rest in the envelope and encrypts it.
func (c *Codec) EncryptData(payload Payload, excludeFields ...string) (models.Ciphertext, error) {
	if err := payload.Validate(); err != nil {
		return models.Ciphertext{}, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return models.Ciphertext{}, fmt.Errorf("marshal payload: %w", err)
	}

	if len(excludeFields) > 0 {
		data, err = stripFields(data, excludeFields)
		if err != nil {
			return models.Ciphertext{}, err
		}
	}

	plaintext, err := json.Marshal(envelope{Kind: payload.Kind(), V: envelopeVersion, Data: data})
	if err != nil {
		return models.Ciphertext{}, fmt.Errorf("marshal envelope: %w", err)
	}

	ct, err := c.cipher.Encrypt(string(plaintext))
	if err != nil {
		return models.Ciphertext{}, fmt.Errorf("encrypt payload: %w", err)
	}

	return ct, nil
}

// CreateEncryptedEntity encrypts payload into a new entity described by meta.
// Timestamps are left for the caller to stamp.
func (c *Codec) CreateEncryptedEntity(payload Payload, meta EntityMeta) (models.EncryptedEntity, error) {
	if meta.ID == "" {
		return models.EncryptedEntity{}, errs.NewValidationError("id", "is required")
	}
	if meta.UserID == "" {
		return models.EncryptedEntity{}, errs.NewValidationError("userId", "is required")
	}

	ct, err := c.EncryptData(payload)
	if err != nil {
		return models.EncryptedEntity{}, err
	}

	entity := models.EncryptedEntity{
		ID:       meta.ID,
		UserID:   meta.UserID,
		PeriodID: meta.PeriodID,
	}
	entity.SetCiphertext(ct)

	return entity, nil
}

// DecryptData decrypts entity into a payload of type T.
func DecryptData[T Payload](c *Codec, entity models.EncryptedEntity) (T, error) {
	var zero T

	plaintext, err := c.cipher.Decrypt(entity.Ciphertext())
	if err != nil {
		return zero, err
	}

	var env envelope
	if err = strictUnmarshal([]byte(plaintext), &env); err != nil {
		return zero, errs.NewValidationError("payload", "is not a valid envelope")
	}
	if env.Kind != zero.Kind() {
		return zero, errs.NewValidationError("payload.kind", fmt.Sprintf("expected %q, got %q", zero.Kind(), env.Kind))
	}
	if env.V != envelopeVersion {
		return zero, errs.NewValidationError("payload.v", fmt.Sprintf("unsupported version %d", env.V))
	}

	var out T
	if err = strictUnmarshal(env.Data, &out); err != nil {
		return zero, errs.NewValidationError("payload.data", fmt.Sprintf("does not match %s shape", zero.Kind()))
	}
	if err = out.Validate(); err != nil {
		return zero, err
	}

	return out, nil
}

// BatchDecrypt decrypts every record and maps it with build. A record that
// fails to decrypt or validate is mapped with placeholder instead; one bad
// record never aborts the batch.
func BatchDecrypt[T Payload, E Record, R any](
	c *Codec,
	records []E,
	build func(E, T) R,
	placeholder func(E, error) R,
) []R {
	out := make([]R, 0, len(records))
	for _, rec := range records {
		payload, err := DecryptData[T](c, rec.Entity())
		if err != nil {
			c.logger.Warn().Err(err).
				Str("func", "codec.BatchDecrypt").
				Str("entity_id", rec.Entity().ID).
				Msg("record replaced with placeholder")
			out = append(out, placeholder(rec, err))
			continue
		}
		out = append(out, build(rec, payload))
	}
	return out
}

// UpdateEncryptedEntity decrypts existing, applies mutate to the payload,
// validates and re-encrypts it under a fresh IV. It returns the patched
// entity and the new payload. Timestamps are left for the caller.
func UpdateEncryptedEntity[T Payload](c *Codec, existing models.EncryptedEntity, mutate func(*T) error) (models.EncryptedEntity, T, error) {
	var zero T

	payload, err := DecryptData[T](c, existing)
	if err != nil {
		return models.EncryptedEntity{}, zero, err
	}

	if err = mutate(&payload); err != nil {
		return models.EncryptedEntity{}, zero, err
	}

	ct, err := c.EncryptData(payload)
	if err != nil {
		return models.EncryptedEntity{}, zero, err
	}

	patched := existing
	patched.SetCiphertext(ct)

	return patched, payload, nil
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after json value")
	}
	return nil
}

func stripFields(data []byte, exclude []string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("payload is not a json object: %w", err)
	}
	for _, name := range exclude {
		delete(fields, name)
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal stripped payload: %w", err)
	}
	return out, nil
}
