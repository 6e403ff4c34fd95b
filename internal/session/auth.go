package session

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/halotrubus/internal/constants"
)

const (
	defaultConsumerAvatar = "/images/avatars/consumer.jpg"
	defaultExpertAvatar   = "/images/avatars/expert.jpg"
	defaultPhone          = "081234567890"
)

// Identity 用户身份
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
	Verified bool   `json:"verified"`
}

// RegisterInput 注册参数
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// Registration 等待邮箱验证的注册信息
type Registration struct {
	Identity     Identity  `json:"identity"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PasswordHasher 注册时对密码做单向哈希
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Gate 受保护操作的策略判断
type Gate interface {
	Allow(role, intent string) bool
}

type authState struct {
	authenticated bool
	identity      *Identity
	role          string
	registration  *Registration
}

func (s *authState) reset() {
	s.authenticated = false
	s.identity = nil
	s.role = constants.RoleConsumer
}

// AuthView 认证只读视图
type AuthView struct {
	Authenticated bool          `json:"authenticated"`
	Identity      *Identity     `json:"identity,omitempty"`
	Role          string        `json:"role"`
	Registration  *Registration `json:"pending_registration,omitempty"`
}

func (s *authState) view() AuthView {
	v := AuthView{Authenticated: s.authenticated, Role: s.role}
	if s.identity != nil {
		identity := *s.identity
		v.Identity = &identity
	}
	if s.registration != nil {
		reg := *s.registration
		v.Registration = &reg
	}
	return v
}

// IsValidRole 显示角色只允许 consumer 与 expert
func IsValidRole(role string) bool {
	return role == constants.RoleConsumer || role == constants.RoleExpert
}

func avatarForRole(role string) string {
	if role == constants.RoleExpert {
		return defaultExpertAvatar
	}
	return defaultConsumerAvatar
}

// 邮箱前缀作为默认昵称
func nameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	words := strings.Fields(local)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToTitle(r)) + w[size:]
	}
	if len(words) == 0 {
		return "Pengguna"
	}
	return strings.Join(words, " ")
}
