package player

import "context"

type Repository interface {
	Create(ctx context.Context, p *Player) (*Player, error)
	FindByID(ctx context.Context, id string) (*Player, error)
	FindByEmail(ctx context.Context, email string) (*Player, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, p *Player) (*Player, error)
}
