// Package speech resolves the text of speech bubbles: a message catalog per
// locale, optionally overridden by a Lua script.
package speech

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/sethgrid/deskpet/internal/pet"
)

type Key string

const (
	Welcome   Key = "welcome"
	Wake      Key = "wake"
	Click     Key = "click"
	Sleep     Key = "sleep"
	Butterfly Key = "butterfly"
	Walk      Key = "walk"
	Jump      Key = "jump"
	Greet     Key = "greet"
	Eat       Key = "eat"
	Time      Key = "time" // args: hour, minute
	Reset     Key = "reset"
	Escape    Key = "escape"
	Settings  Key = "settings"
)

var english = map[Key]string{
	Welcome:   "Ura! I'm Usagi!",
	Wake:      "Huh?!",
	Click:     "Ura~",
	Sleep:     "Zzz...",
	Butterfly: "What a pretty butterfly~",
	Walk:      "Walk time~",
	Jump:      "Up we go!",
	Greet:     "Hi there~",
	Eat:       "Yum yum~",
	Time:      "It's %d:%02d~",
	Reset:     "Back to the middle~",
	Escape:    "Don't grab me!",
	Settings:  "I'm the settings",
}

var chinese = map[Key]string{
	Welcome:   "乌拉！我是乌萨奇！",
	Wake:      "哈？！",
	Click:     "乌拉～",
	Sleep:     "Zzz...",
	Butterfly: "蝴蝶好漂亮～",
	Walk:      "散步时间～",
	Jump:      "跳高高！",
	Greet:     "你好呀～",
	Eat:       "好吃好吃～",
	Time:      "现在是%d点%d分～",
	Reset:     "回到中心啦～",
	Escape:    "不要抓我！",
	Settings:  "我是设置",
}

var actionKeys = map[pet.Action]Key{
	pet.ActionSleep:     Sleep,
	pet.ActionButterfly: Butterfly,
	pet.ActionWalk:      Walk,
	pet.ActionJump:      Jump,
	pet.ActionGreet:     Greet,
	pet.ActionEat:       Eat,
	pet.ActionTime:      Time,
	pet.ActionReset:     Reset,
}

// ForAction is the bubble key an action shows.
func ForAction(a pet.Action) (Key, bool) {
	k, ok := actionKeys[a]
	return k, ok
}

var supported = []language.Tag{language.English, language.Chinese}

// Lines looks up bubble text. It is used from the screen loop only; the Lua
// state is not safe for concurrent use.
type Lines struct {
	locale  string
	printer *message.Printer
	script  *lua.LState
	log     *zap.Logger
}

func New(locale string, log *zap.Logger) *Lines {
	if log == nil {
		log = zap.NewNop()
	}
	matcher := language.NewMatcher(supported)
	_, idx, _ := matcher.Match(language.Make(locale))
	tag := supported[idx]

	return &Lines{
		locale:  tag.String(),
		printer: message.NewPrinter(tag, message.Catalog(newCatalog())),
		log:     log,
	}
}

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range english {
		b.SetString(language.English, string(key), text)
	}
	for key, text := range chinese {
		b.SetString(language.Chinese, string(key), text)
	}
	return b
}

// LoadScript loads a Lua file defining line(key, locale, default). A missing
// file is not an error.
func (l *Lines) LoadScript(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat speech script: %w", err)
	}

	vm := lua.NewState()
	if err := vm.DoFile(path); err != nil {
		vm.Close()
		return fmt.Errorf("load speech script %s: %w", path, err)
	}
	l.Close()
	l.script = vm
	l.log.Debug("loaded speech script", zap.String("file", path))
	return nil
}

// Line returns the text for key. The script's answer wins when it returns a
// non-empty string; any script error falls back to the catalog.
func (l *Lines) Line(key Key, args ...any) string {
	text := l.printer.Sprintf(string(key), args...)
	if l.script == nil {
		return text
	}

	fn := l.script.GetGlobal("line")
	if fn.Type() != lua.LTFunction {
		return text
	}
	if err := l.script.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(key), lua.LString(l.locale), lua.LString(text)); err != nil {
		l.log.Warn("speech script error", zap.String("key", string(key)), zap.Error(err))
		return text
	}

	ret := l.script.Get(-1)
	l.script.Pop(1)
	if s, ok := ret.(lua.LString); ok && s != "" {
		return string(s)
	}
	return text
}

func (l *Lines) Close() {
	if l.script != nil {
		l.script.Close()
		l.script = nil
	}
}
