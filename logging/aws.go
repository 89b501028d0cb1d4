// Copyright 2026 Gravitational, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"context"
	"fmt"
	"log/slog"

	awslogging "github.com/aws/smithy-go/logging"
)

// ToAWSLogger adapts logger for the AWS SDK clients behind S3 sinks.
func ToAWSLogger(logger *slog.Logger) awslogging.Logger {
	return &awsLogger{
		slogger: logger,
	}
}

type awsLogger struct {
	slogger *slog.Logger
	ctx     context.Context
}

var _ awslogging.Logger = &awsLogger{}
var _ awslogging.ContextLogger = &awsLogger{}

func (al *awsLogger) Logf(classification awslogging.Classification, format string, v ...any) {
	level := slog.LevelWarn
	if classification == awslogging.Debug {
		level = slog.LevelDebug
	}

	ctx := al.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	al.slogger.Log(ctx, level, fmt.Sprintf(format, v...), "source", "aws-sdk", "classification", string(classification))
}

func (al *awsLogger) WithContext(ctx context.Context) awslogging.Logger {
	return &awsLogger{
		slogger: al.slogger,
		ctx:     ctx,
	}
}
