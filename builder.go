package xgelf

import (
	"github.com/trickstertwo/xclock"
	"go.uber.org/zap"
)

// Config for constructing an Extractor (Factory data structure).
type Config struct {
	Fields       []Field
	Timestamp    TimestampStrategy // optional; defaults to RecordTime{Clock}
	Clock        xclock.Clock      // optional; defaults to xclock.Default()
	IncludeNulls bool
	Logger       *zap.Logger // optional diagnostics; defaults to zap.NewNop()
	Observers    []Observer
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithFields(fs ...Field) *Builder {
	b.cfg.Fields = append(b.cfg.Fields, fs...)
	return b
}

// WithDefaultFields adds DefaultFields.
func (b *Builder) WithDefaultFields() *Builder {
	return b.WithFields(DefaultFields()...)
}

func (b *Builder) WithTimestamp(s TimestampStrategy) *Builder {
	b.cfg.Timestamp = s
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.cfg.Logger = l
	return b
}

// WithObserver registers o to be notified after every extraction.
func (b *Builder) WithObserver(o Observer) *Builder {
	if o != nil {
		b.cfg.Observers = append(b.cfg.Observers, o)
	}
	return b
}

// IncludeNulls keeps pairs without a value in Extract output.
func (b *Builder) IncludeNulls(on bool) *Builder {
	b.cfg.IncludeNulls = on
	return b
}

// Build constructs the Extractor (Factory + Builder).
func (b *Builder) Build() (*Extractor, error) {
	if len(b.cfg.Fields) == 0 {
		return nil, ErrNoFields
	}
	return newExtractor(b.cfg), nil
}
