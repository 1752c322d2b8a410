package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ordermgr/internal/domain/model"
	repo "ordermgr/internal/repository"

	"go.uber.org/zap"
)

type ClientUsecase struct {
	tx    repo.TransactionManager
	clock Clock
	log   *zap.Logger
}

func NewClientUsecase(tx repo.TransactionManager, clock Clock, log *zap.Logger) *ClientUsecase {
	return &ClientUsecase{tx: tx, clock: clock, log: log}
}

type RegisterClientInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	OrderNumber string `json:"order_number" validate:"max=255"`
}

func (u *ClientUsecase) RegisterClient(ctx context.Context, in RegisterClientInput) (model.Client, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.OrderNumber = strings.TrimSpace(in.OrderNumber)
	if err := validateInput(in); err != nil {
		return model.Client{}, err
	}

	c := model.Client{
		Name:      in.Name,
		OrderDate: dateOf(u.clock.Now()),
	}
	// 空ならNULL（UNIQUEにかからない）
	if in.OrderNumber != "" {
		num := in.OrderNumber
		c.OrderNumber = &num
	}

	var created model.Client
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		created, err = r.Clients().Create(ctx, c)
		if err != nil {
			ue := fromRepoError(err, "")
			if IsKind(ue, KindUniqueViolation) {
				return wrapError(KindUniqueViolation, err,
					fmt.Sprintf("a client with order number %q already exists", in.OrderNumber))
			}
			return ue
		}
		return nil
	})
	if err != nil {
		return model.Client{}, ensureError(err)
	}

	u.log.Info("client registered",
		zap.Int64("client_id", created.ID),
		zap.String("name", created.Name),
	)
	return created, nil
}

func (u *ClientUsecase) GetClient(ctx context.Context, clientID int64) (model.Client, error) {
	if clientID <= 0 {
		return model.Client{}, NewError(KindInvalidInput, "invalid client id")
	}

	var out model.Client
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Clients().FindByID(ctx, clientID)
		if err != nil {
			return fromRepoError(err, fmt.Sprintf("client %d not found", clientID))
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Client{}, ensureError(err)
	}
	return out, nil
}

func (u *ClientUsecase) ListClients(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Clients().List(ctx)
		if err != nil {
			return fromRepoError(err, "")
		}
		out = items
		return nil
	})
	if err != nil {
		return []model.Client{}, ensureError(err)
	}
	return out, nil
}

// 顧客を消すと注文もCASCADEで消える
func (u *ClientUsecase) DeleteClient(ctx context.Context, clientID int64) error {
	if clientID <= 0 {
		return NewError(KindInvalidInput, "invalid client id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Clients().Delete(ctx, clientID); err != nil {
			return fromRepoError(err, fmt.Sprintf("client %d not found", clientID))
		}
		return nil
	})
	if err != nil {
		return ensureError(err)
	}

	u.log.Info("client deleted", zap.Int64("client_id", clientID))
	return nil
}

// 登録日は日付だけ
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
