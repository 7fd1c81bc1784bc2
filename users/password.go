package users

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// Defaults applied by the legacy hash format when the method omits parameters.
const (
	legacyPBKDF2Iterations = 600000
	legacyScryptN          = 1 << 15
	legacyScryptR          = 8
	legacyScryptP          = 1
	legacyScryptKeyLen     = 64
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies password against a stored hash. Besides bcrypt it
// accepts the "method$salt$hexdigest" hashes already present in older tables,
// where method is "pbkdf2:<hash>[:iterations]" or "scrypt[:n:r:p]".
func CheckPasswordHash(password, hash string) bool {
	if strings.HasPrefix(hash, "pbkdf2:") || strings.HasPrefix(hash, "scrypt") {
		return checkLegacyHash(password, hash)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func checkLegacyHash(password, stored string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, digest := parts[0], parts[1], parts[2]
	want, err := hex.DecodeString(digest)
	if err != nil || len(want) == 0 {
		return false
	}

	var got []byte
	args := strings.Split(method, ":")
	switch args[0] {
	case "pbkdf2":
		got = legacyPBKDF2(password, salt, args[1:], len(want))
	case "scrypt":
		got = legacyScrypt(password, salt, args[1:])
	}
	if got == nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}

func legacyPBKDF2(password, salt string, args []string, keyLen int) []byte {
	hashName := "sha256"
	iterations := legacyPBKDF2Iterations
	if len(args) > 0 && args[0] != "" {
		hashName = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return nil
		}
		iterations = n
	}

	var h func() hash.Hash
	switch hashName {
	case "sha256":
		h = sha256.New
	case "sha512":
		h = sha512.New
	case "sha1":
		h = sha1.New
	default:
		return nil
	}
	return pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLen, h)
}

func legacyScrypt(password, salt string, args []string) []byte {
	n, r, p := legacyScryptN, legacyScryptR, legacyScryptP
	if len(args) == 3 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil {
			return nil
		}
		if r, err = strconv.Atoi(args[1]); err != nil {
			return nil
		}
		if p, err = strconv.Atoi(args[2]); err != nil {
			return nil
		}
	} else if len(args) != 0 {
		return nil
	}
	key, err := scrypt.Key([]byte(password), []byte(salt), n, r, p, legacyScryptKeyLen)
	if err != nil {
		return nil
	}
	return key
}
