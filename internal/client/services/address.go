package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

type AddressService interface {
	List(ctx context.Context) ([]models.Address, error)
	Create(ctx context.Context, a models.Address) (*models.Address, error)
	Update(ctx context.Context, addressID int64, a models.Address) (*models.Address, error)
	Delete(ctx context.Context, addressID int64) error
	SetDefault(ctx context.Context, addressID int64) (*models.Address, error)
}

type addressService struct {
	api Doer
}

func NewAddressService(api Doer) AddressService {
	return &addressService{api: api}
}

func (s *addressService) List(ctx context.Context) ([]models.Address, error) {
	var resp models.Envelope[[]models.Address]
	if err := get(ctx, s.api, "/addresses", nil, &resp); err != nil {
		return nil, wrap("list addresses", err)
	}
	return resp.Data, nil
}

func (s *addressService) Create(ctx context.Context, a models.Address) (*models.Address, error) {
	var resp models.Envelope[models.Address]
	if err := post(ctx, s.api, "/addresses", a, &resp); err != nil {
		return nil, wrap("create address", err)
	}
	return &resp.Data, nil
}

func (s *addressService) Update(ctx context.Context, addressID int64, a models.Address) (*models.Address, error) {
	var resp models.Envelope[models.Address]
	if err := put(ctx, s.api, "/addresses/"+id(addressID), a, &resp); err != nil {
		return nil, wrap("update address", err)
	}
	return &resp.Data, nil
}

func (s *addressService) Delete(ctx context.Context, addressID int64) error {
	return wrap("delete address", del(ctx, s.api, "/addresses/"+id(addressID), nil))
}

func (s *addressService) SetDefault(ctx context.Context, addressID int64) (*models.Address, error) {
	var resp models.Envelope[models.Address]
	if err := post(ctx, s.api, "/addresses/"+id(addressID)+"/default", nil, &resp); err != nil {
		return nil, wrap("set default address", err)
	}
	return &resp.Data, nil
}
