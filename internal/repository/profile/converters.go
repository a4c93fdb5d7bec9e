package profile

import "relay/internal/entities"

func ToDomain(p *ProfileDB) *entities.Profile {
	if p == nil {
		return nil
	}

	return &entities.Profile{
		TelegramID: p.TelegramID,
		FullName:   p.FullName,
		Phone:      p.Phone,
		Username:   p.Username,
		CreatedAt:  p.CreatedAt,
	}
}
