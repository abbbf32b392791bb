package completion

import (
	"fmt"
	"sort"
	"strings"
)

// Script returns the completion script for shell.
func Script(shell, program string) (string, error) {
	switch shell {
	case "bash":
		return bashScript(program), nil
	case "zsh":
		return zshScript(program), nil
	case "fish":
		return fishScript(program), nil
	}
	return "", fmt.Errorf("unsupported shell: %s (supported: %s)", shell, strings.Join(Shells(), ", "))
}

func flagWords(flags []FlagInfo) []string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Name)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	sort.Strings(words)
	return words
}

func funcName(program string) string {
	return "_" + strings.NewReplacer("-", "_", ".", "_").Replace(program)
}

func bashScript(program string) string {
	fn := funcName(program)
	var b strings.Builder

	var cmdNames []string
	for _, c := range GetCommands() {
		cmdNames = append(cmdNames, c.Name)
	}

	fmt.Fprintf(&b, "# bash completion for %s\n", program)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("  local cur prev sub\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  sub=\"\"\n")
	b.WriteString("  for w in \"${COMP_WORDS[@]:1:COMP_CWORD-1}\"; do\n")
	fmt.Fprintf(&b, "    case \"$w\" in %s) sub=\"$w\";; esac\n", strings.Join(cmdNames, "|"))
	b.WriteString("  done\n\n")

	b.WriteString("  case \"$prev\" in\n")
	for _, f := range GetFlags() {
		if !f.HasValue || len(f.Values) == 0 {
			continue
		}
		pattern := "--" + f.Name
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return;;\n", pattern, strings.Join(f.Values, " "))
	}
	b.WriteString("  esac\n\n")

	b.WriteString("  case \"$sub\" in\n")
	for _, c := range GetCommands() {
		words := flagWords(c.Flags)
		if c.Name == "completion" {
			words = append(words, Shells()...)
		}
		fmt.Fprintf(&b, "    %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return;;\n", c.Name, strings.Join(words, " "))
	}
	b.WriteString("  esac\n")

	top := append(cmdNames, flagWords(GetFlags())...)
	fmt.Fprintf(&b, "  COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(top, " "))
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, program)
	return b.String()
}

func zshEscape(s string) string {
	return strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:").Replace(s)
}

func zshFlagSpecs(flags []FlagInfo) []string {
	specs := make([]string, 0, len(flags))
	for _, f := range flags {
		desc := zshEscape(f.Description)
		action := ""
		if f.HasValue {
			action = ":" + strings.ToLower(f.ValueHint) + ":"
			if len(f.Values) > 0 {
				action += "(" + strings.Join(f.Values, " ") + ")"
			}
		}
		names := "--" + f.Name
		if f.Short != "" {
			names = "{-" + f.Short + ",--" + f.Name + "}"
			specs = append(specs, fmt.Sprintf("%s'[%s]%s'", names, desc, action))
			continue
		}
		specs = append(specs, fmt.Sprintf("'%s[%s]%s'", names, desc, action))
	}
	return specs
}

func zshScript(program string) string {
	fn := funcName(program)
	var b strings.Builder

	fmt.Fprintf(&b, "#compdef %s\n\n", program)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("  local -a commands\n")
	b.WriteString("  commands=(\n")
	for _, c := range GetCommands() {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshEscape(c.Description))
	}
	b.WriteString("  )\n\n")

	b.WriteString("  _arguments -C \\\n")
	for _, spec := range zshFlagSpecs(GetFlags()) {
		fmt.Fprintf(&b, "    %s \\\n", spec)
	}
	b.WriteString("    '1: :->cmd' \\\n")
	b.WriteString("    '*:: :->args'\n\n")

	b.WriteString("  case $state in\n")
	b.WriteString("    cmd) _describe 'command' commands;;\n")
	b.WriteString("    args)\n")
	b.WriteString("      case $words[1] in\n")
	for _, c := range GetCommands() {
		specs := zshFlagSpecs(c.Flags)
		if c.Name == "completion" {
			specs = append(specs, fmt.Sprintf("'1:shell:(%s)'", strings.Join(Shells(), " ")))
		}
		fmt.Fprintf(&b, "        %s) _arguments %s;;\n", c.Name, strings.Join(specs, " "))
	}
	b.WriteString("      esac;;\n")
	b.WriteString("  esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "compdef %s %s\n", fn, program)
	return b.String()
}

func fishScript(program string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# fish completion for %s\n", program)

	var cmdNames []string
	for _, c := range GetCommands() {
		cmdNames = append(cmdNames, c.Name)
	}
	noSub := "not __fish_seen_subcommand_from " + strings.Join(cmdNames, " ")

	writeFlag := func(cond string, f FlagInfo) {
		fmt.Fprintf(&b, "complete -c %s -n '%s' -l %s", program, cond, f.Name)
		if f.Short != "" {
			fmt.Fprintf(&b, " -s %s", f.Short)
		}
		if f.HasValue {
			b.WriteString(" -r")
			if len(f.Values) > 0 {
				fmt.Fprintf(&b, " -f -a '%s'", strings.Join(f.Values, " "))
			}
		}
		fmt.Fprintf(&b, " -d '%s'\n", strings.ReplaceAll(f.Description, "'", "\\'"))
	}

	for _, c := range GetCommands() {
		fmt.Fprintf(&b, "complete -c %s -f -n '%s' -a %s -d '%s'\n", program, noSub, c.Name, c.Description)
	}
	for _, f := range GetFlags() {
		writeFlag(noSub, f)
	}
	for _, c := range GetCommands() {
		cond := "__fish_seen_subcommand_from " + c.Name
		for _, f := range c.Flags {
			writeFlag(cond, f)
		}
		if c.Name == "completion" {
			fmt.Fprintf(&b, "complete -c %s -f -n '%s' -a '%s'\n", program, cond, strings.Join(Shells(), " "))
		}
	}
	return b.String()
}
