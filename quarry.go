// Copyright 2025 Quarry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package quarry

import (
	"log/slog"

	"github.com/quarry-app/quarry/ai"
	"github.com/quarry-app/quarry/ai/openai"
	"github.com/quarry-app/quarry/behavior"
	"github.com/quarry-app/quarry/search"
	"github.com/quarry-app/quarry/storage"
	"github.com/quarry-app/quarry/storage/badger"
)

// KnowledgeBase is the assembled application: storage, the query
// interpreter, and factories for the search engine and behavior recorder.
type KnowledgeBase struct {
	backend      *badger.Backend
	itemRepo     storage.ItemRepository
	behaviorRepo storage.BehaviorRepository
	interpreter  ai.QueryInterpreter
	logger       *slog.Logger
}

// KnowledgeBaseOption configures a KnowledgeBase.
type KnowledgeBaseOption func(*knowledgeBaseOptions)

type knowledgeBaseOptions struct {
	aiConfig    *ai.Config
	interpreter ai.QueryInterpreter
}

// WithAIConfig sets the text-completion service configuration used to build
// the query interpreter.
func WithAIConfig(config *ai.Config) KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInterpreter injects a pre-built query interpreter, bypassing the
// AI configuration entirely. Useful for tests and offline use.
func WithInterpreter(interpreter ai.QueryInterpreter) KnowledgeBaseOption {
	return func(o *knowledgeBaseOptions) {
		o.interpreter = interpreter
	}
}

// Open assembles a knowledge base stored at filePath.
func Open(filePath string, opts ...KnowledgeBaseOption) (*KnowledgeBase, error) {
	// Apply options
	options := &knowledgeBaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create item repository
	itemRepo, err := badger.NewItemRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create behavior repository
	behaviorRepo, err := badger.NewBehaviorRepository(backend)
	if err != nil {
		itemRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create the query interpreter unless one was injected
	interpreter := options.interpreter
	if interpreter == nil {
		interpreter, err = openai.NewQueryInterpreter(options.aiConfig)
		if err != nil {
			behaviorRepo.Close()
			itemRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &KnowledgeBase{
		backend:      backend,
		itemRepo:     itemRepo,
		behaviorRepo: behaviorRepo,
		interpreter:  interpreter,
		logger:       slog.Default(),
	}, nil
}

func (kb *KnowledgeBase) Close() error {
	// Close repositories
	if err := kb.behaviorRepo.Close(); err != nil {
		kb.logger.Error("error closing behavior repository", "err", err)
		return err
	}
	if err := kb.itemRepo.Close(); err != nil {
		kb.logger.Error("error closing item repository", "err", err)
		return err
	}

	// Close backend
	if err := kb.backend.Close(); err != nil {
		kb.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (kb *KnowledgeBase) ItemRepository() storage.ItemRepository {
	return kb.itemRepo
}

func (kb *KnowledgeBase) BehaviorRepository() storage.BehaviorRepository {
	return kb.behaviorRepo
}

func (kb *KnowledgeBase) NewEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(kb.interpreter, opts...)
}

func (kb *KnowledgeBase) NewRecorder(opts ...behavior.Option) (*behavior.Recorder, error) {
	opts = append([]behavior.Option{behavior.WithItemSource(kb.itemRepo)}, opts...)
	return behavior.NewRecorder(kb.behaviorRepo, opts...)
}
