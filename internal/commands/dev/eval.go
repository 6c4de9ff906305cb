// Package dev - !eval command
package dev

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/SentryLabs/SentryBotGo/pkg/config"
	"github.com/SentryLabs/SentryBotGo/pkg/database"
	"github.com/SentryLabs/SentryBotGo/pkg/discord"
	"github.com/SentryLabs/SentryBotGo/pkg/logger"
	"github.com/SentryLabs/SentryBotGo/pkg/moderation"
)

var evalCommand *discord.Command

func init() {
	evalCommand = discord.NewCommand(
		"eval",
		"Evaluates Go code inside the running bot (dangerous)",
		"dev",
		evalHandler,
	).WithUsage("<code>").AsDev()
}

// evalHandler handles the !eval command. The dispatcher already restricts
// dev commands to the owner; everything here runs in-process, so this stays
// an owner-only escape hatch.
func evalHandler(ctx *discord.CommandContext) error {
	start := time.Now()

	code := ctx.RestFrom(0)
	code = strings.TrimPrefix(code, "```go")
	code = strings.TrimPrefix(code, "```")
	code = strings.TrimSuffix(code, "```")
	code = strings.TrimSpace(code)
	if code == "" {
		return ctx.ReplyUsage(evalCommand)
	}

	i := interp.New(interp.Options{})

	if err := i.Use(stdlib.Symbols); err != nil {
		return ctx.Reply(fmt.Sprintf("❌ Error loading stdlib: %v", err))
	}

	// Inject live bot handles so scripts can poke at the running state
	botExports := map[string]reflect.Value{
		"Ctx":     reflect.ValueOf(ctx),
		"Bot":     reflect.ValueOf(ctx.Client),
		"Session": reflect.ValueOf(ctx.Session),
		"DB":      reflect.ValueOf(database.Get()),
		"Config":  reflect.ValueOf(config.Get()),
		"Warns":   reflect.ValueOf(moderation.Get()),
	}

	if err := i.Use(interp.Exports{
		"github.com/SentryLabs/SentryBotGo/internal/commands/dev/dev": botExports,
	}); err != nil {
		return ctx.Reply(fmt.Sprintf("❌ Error registering variables: %v", err))
	}

	if _, err := i.Eval(`import . "github.com/SentryLabs/SentryBotGo/internal/commands/dev"`); err != nil {
		return ctx.Reply(fmt.Sprintf("❌ Error importing variables: %v", err))
	}

	res, err := i.Eval(code)

	var output string
	if err != nil {
		output = fmt.Sprintf("❌ **Execution Error:**\n```go\n%v\n```", err)
	} else {
		var resStr string
		if res.IsValid() {
			resStr = fmt.Sprintf("%#v", res.Interface())
		} else {
			resStr = "nil"
		}
		if len(resStr) > 1900 {
			resStr = resStr[:1900] + "... (truncated)"
		}

		output = fmt.Sprintf("✅ **Result:**\n```go\n%s\n```", resStr)
	}

	logger.Debug(fmt.Sprintf("Eval finished in %s", time.Since(start)), "DevEval")

	return ctx.Reply(output)
}
