package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/angelmondragon/windowquote-backend/pkg/config"
)

const (
	maxPasswordBytes = 1024
	// maxStoredMemoryKB keeps a tampered hash row from making a login allocate without bound.
	maxStoredMemoryKB = 1 << 20
)

var (
	ErrInvalidHash     = errors.New("invalid argon2id hash")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrPasswordTooLong = fmt.Errorf("password exceeds %d bytes", maxPasswordBytes)
)

var b64 = base64.RawStdEncoding

// argonParams are the cost settings encoded into every hash.
type argonParams struct {
	memoryKB uint32
	passes   uint32
	threads  uint8
	saltLen  uint32
	keyLen   uint32
}

// encodedHash is a parsed $argon2id$v=19$m=..,t=..,p=..$salt$key string.
type encodedHash struct {
	params argonParams
	salt   []byte
	key    []byte
}

func (h encodedHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.memoryKB, h.params.passes, h.params.threads,
		b64.EncodeToString(h.salt), b64.EncodeToString(h.key))
}

// HashPassword derives an Argon2id hash using the configured cost, clamped to sane bounds.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}
	p := paramsFromConfig(cfg)
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, p.passes, p.memoryKB, p.threads, p.keyLen)
	return encodedHash{params: p, salt: salt, key: key}.String(), nil
}

// VerifyPassword reports whether password matches encoded. A malformed hash is an error;
// a wrong password is not.
func VerifyPassword(password, encoded string) (bool, error) {
	h, err := parseHash(encoded)
	if err != nil {
		return false, err
	}
	if checkPassword(password) != nil {
		return false, nil
	}
	key := argon2.IDKey([]byte(password), h.salt, h.params.passes, h.params.memoryKB, h.params.threads, uint32(len(h.key)))
	return subtle.ConstantTimeCompare(h.key, key) == 1, nil
}

// NeedsRehash reports whether encoded was produced with weaker parameters than cfg asks for.
func NeedsRehash(encoded string, cfg config.PasswordConfig) bool {
	h, err := parseHash(encoded)
	if err != nil {
		return true
	}
	want := paramsFromConfig(cfg)
	return h.params.memoryKB < want.memoryKB ||
		h.params.passes < want.passes ||
		h.params.threads != want.threads ||
		uint32(len(h.key)) < want.keyLen
}

func checkPassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) > maxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

func paramsFromConfig(cfg config.PasswordConfig) argonParams {
	return argonParams{
		memoryKB: uint32(clamp(cfg.ArgonMemoryKB, 8, 512*1024)),
		passes:   uint32(clamp(cfg.ArgonTime, 1, 10)),
		threads:  uint8(clamp(cfg.ArgonParallelism, 1, 255)),
		saltLen:  uint32(clamp(cfg.ArgonSaltLen, 8, 64)),
		keyLen:   uint32(clamp(cfg.ArgonKeyLen, 16, 64)),
	}
}

func parseHash(encoded string) (encodedHash, error) {
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return encodedHash{}, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return encodedHash{}, ErrInvalidHash
	}

	var h encodedHash
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &h.params.memoryKB, &h.params.passes, &h.params.threads); err != nil {
		return encodedHash{}, ErrInvalidHash
	}
	if h.params.memoryKB == 0 || h.params.memoryKB > maxStoredMemoryKB || h.params.passes == 0 || h.params.threads == 0 {
		return encodedHash{}, ErrInvalidHash
	}

	var err error
	if h.salt, err = b64.DecodeString(fields[4]); err != nil || len(h.salt) == 0 {
		return encodedHash{}, ErrInvalidHash
	}
	if h.key, err = b64.DecodeString(fields[5]); err != nil || len(h.key) == 0 {
		return encodedHash{}, ErrInvalidHash
	}
	h.params.saltLen = uint32(len(h.salt))
	h.params.keyLen = uint32(len(h.key))
	return h, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
