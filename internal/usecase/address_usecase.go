package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"genstore/internal/domain/model"
	repo "genstore/internal/repository"
)

type AddressUsecase struct {
	tx        repo.TransactionManager
	addresses repo.AddressRepository
}

func NewAddressUsecase(tx repo.TransactionManager, addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{tx: tx, addresses: addresses}
}

type AddressInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	IsDefault   bool   `json:"is_default"`
}

func (in AddressInput) check() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.AddressLine) == "" {
		return NewHTTPError(http.StatusBadRequest, "address_line is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return NewHTTPError(http.StatusBadRequest, "city is required")
	}
	if strings.TrimSpace(in.PostalCode) == "" {
		return NewHTTPError(http.StatusBadRequest, "postal_code is required")
	}
	if strings.TrimSpace(in.Country) == "" {
		return NewHTTPError(http.StatusBadRequest, "country is required")
	}
	return nil
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.check(); err != nil {
		return model.Address{}, err
	}

	a := model.Address{
		UserID:      userID,
		Name:        in.Name,
		Phone:       in.Phone,
		AddressLine: in.AddressLine,
		City:        in.City,
		State:       in.State,
		PostalCode:  in.PostalCode,
		Country:     in.Country,
		IsDefault:   in.IsDefault,
	}

	//最初の1件は必ずデフォルトにする
	existing, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(existing) == 0 {
		a.IsDefault = true
	}

	var created model.Address
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if a.IsDefault {
			if err := r.Addresses().ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		var err error
		created, err = r.Addresses().Create(ctx, a)
		return err
	})
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID int64, in AddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.check(); err != nil {
		return model.Address{}, err
	}

	if err := u.mustOwn(ctx, addressID, userID); err != nil {
		return model.Address{}, err
	}

	a := model.Address{
		ID:          addressID,
		UserID:      userID,
		Name:        in.Name,
		Phone:       in.Phone,
		AddressLine: in.AddressLine,
		City:        in.City,
		State:       in.State,
		PostalCode:  in.PostalCode,
		Country:     in.Country,
		IsDefault:   in.IsDefault,
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if a.IsDefault {
			if err := r.Addresses().ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		return r.Addresses().Update(ctx, a)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return a, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.mustOwn(ctx, addressID, userID); err != nil {
		return err
	}
	err := u.addresses.Delete(ctx, addressID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetDefault は他の住所のデフォルトを外してから付け替える
func (u *AddressUsecase) SetDefault(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.mustOwn(ctx, addressID, userID); err != nil {
		return err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Addresses().ClearDefault(ctx, userID); err != nil {
			return err
		}
		return r.Addresses().SetDefault(ctx, addressID)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 他人の住所は404として扱う
func (u *AddressUsecase) mustOwn(ctx context.Context, addressID int64, userID int64) error {
	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "address not found")
	}
	return nil
}
