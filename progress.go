package main

import (
	"fmt"
	"log"
)

// Stats is the end-of-run summary shown on the game-over screen and handed
// to the progress reporter.
type Stats struct {
	Score           int
	Kills           int
	Credits         int
	Level           int
	SurvivalSeconds int
}

func (s Stats) String() string {
	return fmt.Sprintf("score %d, kills %d, credits %d, level %d, survived %dm%02ds",
		s.Score, s.Kills, s.Credits, s.Level, s.SurvivalSeconds/60, s.SurvivalSeconds%60)
}

// Reporter hears about run milestones. The default implementation logs
// them; tests swap in a recording one.
type Reporter interface {
	LevelUp(level int)
	BossSpawned(bossType string)
	BossDefeated(bossType string, score int)
	GameOver(stats Stats)
}

type logReporter struct{}

// NewLogReporter returns a Reporter that writes milestones to the standard
// logger.
func NewLogReporter() Reporter {
	return logReporter{}
}

func (logReporter) LevelUp(level int) {
	log.Printf("difficulty up: level %d", level)
}

func (logReporter) BossSpawned(bossType string) {
	log.Printf("boss inbound: %s", bossType)
}

func (logReporter) BossDefeated(bossType string, score int) {
	log.Printf("boss down: %s (+%d)", bossType, score)
}

func (logReporter) GameOver(stats Stats) {
	log.Printf("run over: %s", stats)
}
