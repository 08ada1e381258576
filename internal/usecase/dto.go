package usecase

import "github.com/xavierca1/ligue-leads/internal/entity"

// LeadInput is the body accepted by create and update.
type LeadInput struct {
	Name        string `json:"name" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Status      string `json:"status" validate:"required"`
	Owner       string `json:"owner" validate:"required"`
	OwnerAvatar string `json:"ownerAvatar"`
}

type ListLeadsInput struct {
	Search string
	Status string
}

func (in LeadInput) toLead() *entity.Lead {
	return &entity.Lead{
		Name:        in.Name,
		Company:     in.Company,
		Email:       in.Email,
		Phone:       in.Phone,
		Status:      in.Status,
		Owner:       in.Owner,
		OwnerAvatar: entity.AvatarFor(in.Owner, in.OwnerAvatar),
	}
}
