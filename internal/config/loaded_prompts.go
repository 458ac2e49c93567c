package config

import (
	"sync"
)

// LoadedStagePrompts holds prompt content loaded from files for one stage.
type LoadedStagePrompts struct {
	System string
	User   string
}

// loadedPromptStore keeps file-sourced prompt content per stage. The prompt
// watcher swaps entries at runtime, so access is guarded.
type loadedPromptStore struct {
	mu     sync.RWMutex
	stages map[string]LoadedStagePrompts
}

var loadedPrompts = &loadedPromptStore{
	stages: make(map[string]LoadedStagePrompts),
}

func (s *loadedPromptStore) forStage(stage string) LoadedStagePrompts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stages[stage]
}

func (s *loadedPromptStore) setSystem(stage, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.stages[stage]
	p.System = content
	s.stages[stage] = p
}

func (s *loadedPromptStore) setUser(stage, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.stages[stage]
	p.User = content
	s.stages[stage] = p
}

// GetLoadedStagePrompts returns the current file-sourced prompts for a stage.
func GetLoadedStagePrompts(stage string) LoadedStagePrompts {
	return loadedPrompts.forStage(stage)
}
