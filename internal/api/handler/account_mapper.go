package handler

import (
	"github.com/samber/lo"

	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/ports"
)

func toCustomerResource(a *domain.Account) customerResource {
	return customerResource{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		PhoneNumber: lo.EmptyableToPtr(a.PhoneNumber),
		IsSuspended: a.IsSuspended,
		LastLogin:   a.LastLogin,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toCustomerResources(accounts []*domain.Account) []customerResource {
	return lo.Map(accounts, func(a *domain.Account, _ int) customerResource {
		return toCustomerResource(a)
	})
}

func (r registerCustomerRequest) toInput() ports.CreateCustomerInput {
	return ports.CreateCustomerInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Password:    r.Password,
		PhoneNumber: r.PhoneNumber,
	}
}

func (r createCustomerRequest) toInput() ports.CreateCustomerInput {
	return ports.CreateCustomerInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Password:    r.Password,
		PhoneNumber: r.PhoneNumber,
		IsSuspended: r.IsSuspended,
	}
}

func (r updateCustomerRequest) toInput() ports.UpdateCustomerInput {
	return ports.UpdateCustomerInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Password:    r.Password,
		PhoneNumber: r.PhoneNumber,
		IsSuspended: r.IsSuspended,
	}
}
