package main

import (
	"fmt"
	"io"

	"github.com/sevlyar/go-daemon"

	"telegram-relay-bot/internal/pkg/config"
)

// daemonize перезапускает процесс в фоне. Для родительского процесса
// возвращает parent=true: ему остается только завершиться.
// Возвращаемый io.Closer освобождает pid-файл в дочернем процессе.
func daemonize(cfg config.Daemon) (parent bool, release io.Closer, err error) {
	ctx := &daemon.Context{
		PidFileName: cfg.PidFile,
		PidFilePerm: config.DefaultPidPerm,
		LogFileName: cfg.LogFile,
		LogFilePerm: config.DefaultLogPerm,
		WorkDir:     cfg.WorkDir,
		Umask:       0o027,
	}

	child, err := ctx.Reborn()
	if err != nil {
		return false, nil, fmt.Errorf("failed to daemonize: %w", err)
	}
	if child != nil {
		return true, nil, nil
	}
	return false, daemonRelease{ctx}, nil
}

type daemonRelease struct {
	ctx *daemon.Context
}

func (d daemonRelease) Close() error {
	return d.ctx.Release()
}
