// Package password hashes account passwords with Argon2id. Hashes imported
// from the previous deployment are bcrypt and stay valid until the next
// successful login rehashes them.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted at registration and reset.
const MinLength = 6

const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16

	argonPrefix = "$argon2id$"
)

var errMalformed = errors.New("malformed argon2id hash")

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	hash    []byte
}

// Hash returns an encoded Argon2id hash of password.
func Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("%sv=19$m=%d,t=%d,p=%d$%s$%s",
		argonPrefix,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify reports whether password matches encoded, which is either an
// Argon2id hash or a legacy bcrypt hash.
func Verify(password, encoded string) bool {
	if isBcrypt(encoded) {
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	}

	params, err := decodeArgon(encoded)
	if err != nil {
		return false
	}
	check := argon2.IDKey([]byte(password), params.salt, params.time, params.memory, params.threads, uint32(len(params.hash)))
	return subtle.ConstantTimeCompare(params.hash, check) == 1
}

// NeedsRehash reports whether encoded should be replaced by a fresh Hash
// after a successful Verify: bcrypt hashes and Argon2id hashes created with
// weaker parameters than the current ones.
func NeedsRehash(encoded string) bool {
	if isBcrypt(encoded) {
		return true
	}
	params, err := decodeArgon(encoded)
	if err != nil {
		return false
	}
	return params.memory < argonMemory || params.time < argonTime || params.threads < argonThreads
}

func isBcrypt(encoded string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}

func decodeArgon(encoded string) (argonParams, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return argonParams{}, errMalformed
	}

	fields := strings.Split(parts[3], ",")
	if len(fields) != 3 {
		return argonParams{}, errMalformed
	}
	m, err := parseParam(fields[0], "m=", 32)
	if err != nil {
		return argonParams{}, err
	}
	t, err := parseParam(fields[1], "t=", 32)
	if err != nil {
		return argonParams{}, err
	}
	p, err := parseParam(fields[2], "p=", 8)
	if err != nil {
		return argonParams{}, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return argonParams{}, errMalformed
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return argonParams{}, errMalformed
	}

	return argonParams{
		memory:  uint32(m),
		time:    uint32(t),
		threads: uint8(p),
		salt:    salt,
		hash:    hash,
	}, nil
}

func parseParam(field, prefix string, bits int) (uint64, error) {
	raw, ok := strings.CutPrefix(field, prefix)
	if !ok {
		return 0, errMalformed
	}
	value, err := strconv.ParseUint(raw, 10, bits)
	if err != nil || value == 0 {
		return 0, errMalformed
	}
	return value, nil
}
