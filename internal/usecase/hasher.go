package usecase

import "golang.org/x/crypto/bcrypt"

// パスワードのハッシュ化を差し替え可能にする。
// 照合はログインを持つ認証基盤側の仕事なのでここには無い
type PasswordHasher interface {
	Hash(password string) (string, error)
}

type bcryptHasher struct {
	cost int
}

func NewBcryptPasswordHasher() PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
