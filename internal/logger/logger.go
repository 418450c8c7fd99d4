package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Log adalah logger proses-wide. Error ingestion ADMS hanya kelihatan di sini
// (mesin tidak pernah dikasih response error), jadi jangan dimatikan di production.
var Log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	Log = zerolog.New(cw).With().Timestamp().Logger()
}
