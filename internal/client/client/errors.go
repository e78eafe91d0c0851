package client

import (
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = common.ErrUnauthorized
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
	ErrNotRecoveryLink       = errors.New("not a password recovery link")
)
