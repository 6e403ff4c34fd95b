package session

import "golang.org/x/crypto/bcrypt"

// bcrypt 只使用前 72 字节
const bcryptMaxPasswordBytes = 72

// BcryptHasher bcrypt 密码哈希
type BcryptHasher struct {
	Cost int
}

// Hash 实现 PasswordHasher
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	raw := []byte(password)
	if len(raw) > bcryptMaxPasswordBytes {
		raw = raw[:bcryptMaxPasswordBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(raw, cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
