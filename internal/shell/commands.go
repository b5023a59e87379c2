package shell

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ivlev/datasettag/internal/source"
	"github.com/ivlev/datasettag/internal/tags"
	"github.com/ivlev/datasettag/internal/thumbnail"
)

func registerCommands(r *Registry) {
	r.Register(&Command{Name: "ls", Aliases: []string{"list"}, Usage: "ls", Summary: "rescan and list images", Run: cmdList})
	r.Register(&Command{Name: "open", Aliases: []string{"o"}, Usage: "open <n|name|latest>", Summary: "select an image and load its tags", Run: cmdOpen})
	r.Register(&Command{Name: "preview", Aliases: []string{"thumbs"}, Usage: "preview [n|name]", Summary: "write PNG previews of one or all images", Run: cmdPreview})
	r.Register(&Command{Name: "show", Aliases: []string{"s"}, Usage: "show", Summary: "show trigger, tags and caption", Run: cmdShow})
	r.Register(&Command{Name: "add", Aliases: []string{"a"}, Usage: "add <Category> <text>", Summary: "add a free-text tag", Run: cmdAdd})
	r.Register(&Command{Name: "pick", Aliases: []string{"p"}, Usage: "pick <Category> <n>", Summary: "add a tag from the catalog", Run: cmdPick})
	r.Register(&Command{Name: "rm", Aliases: []string{"remove"}, Usage: "rm <n>", Summary: "remove a selected tag", Run: cmdRemove})
	r.Register(&Command{Name: "edit", Usage: "edit <n> <text>", Summary: "change the text of a selected tag", Run: cmdEdit})
	r.Register(&Command{Name: "trigger", Aliases: []string{"t"}, Usage: "trigger [text|--clear]", Summary: "show or set the trigger word", Run: cmdTrigger})
	r.Register(&Command{Name: "clear", Usage: "clear", Summary: "clear tags and trigger word", Run: cmdClear})
	r.Register(&Command{Name: "save", Aliases: []string{"w"}, Usage: "save", Summary: "write caption file and manifest", Run: cmdSave})
	r.Register(&Command{Name: "copy", Aliases: []string{"y"}, Usage: "copy [file]", Summary: "print or store the tags as JSON", Run: cmdCopy})
	r.Register(&Command{Name: "paste", Usage: "paste <file|json>", Summary: "replace tags from copied JSON", Run: cmdPaste})
	r.Register(&Command{Name: "catalog", Aliases: []string{"cat"}, Usage: "catalog [Category] | catalog add|rm <Category> <text> | catalog rename <Category> <n> <text>", Summary: "show or edit the tag catalog", Run: cmdCatalog})
	r.Register(&Command{Name: "categories", Usage: "categories", Summary: "list categories in caption order", Run: cmdCategories})
	r.Register(&Command{Name: "help", Aliases: []string{"?"}, Usage: "help", Summary: "list commands", Run: cmdHelp})
	r.Register(&Command{Name: "quit", Aliases: []string{"exit", "q"}, Usage: "quit", Summary: "leave the shell", Run: cmdQuit})
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return n, nil
}

func cmdList(_ context.Context, sh *Shell, _ []string) error {
	if err := sh.src.Refresh(); err != nil {
		return err
	}
	sh.println(sh.view.Images(sh.src.Images(), sh.sess.Image()))
	return nil
}

// findImage resolves a file name, manifest key, list index or "latest".
func findImage(sh *Shell, arg string) (source.Image, error) {
	img, ok := sh.src.Find(arg)
	if !ok && arg == "latest" {
		img, ok = sh.src.Latest()
	}
	if !ok {
		if n, err := strconv.Atoi(arg); err == nil {
			img, ok = sh.src.At(n)
		}
	}
	if !ok {
		return source.Image{}, fmt.Errorf("image %q not found", arg)
	}
	return img, nil
}

func cmdOpen(ctx context.Context, sh *Shell, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	img, err := findImage(sh, args[0])
	if err != nil {
		return err
	}

	if err := sh.sess.Select(img.Path); err != nil {
		sh.printf("[!] stored tags not loaded: %v\n", err)
	}
	if w, h, err := source.Dimensions(img.Path); err == nil {
		sh.printf("[+] %s (%dx%d)\n", img.Name, w, h)
	} else {
		sh.printf("[+] %s (unreadable image: %v)\n", img.Name, err)
	}
	return cmdShow(ctx, sh, nil)
}

// cmdPreview writes PNG previews of one image or of the whole directory.
// The generator is shared by the session, so unchanged images are not
// decoded again.
func cmdPreview(ctx context.Context, sh *Shell, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	images := sh.src.Images()
	if len(args) == 1 {
		img, err := findImage(sh, args[0])
		if err != nil {
			return err
		}
		images = []source.Image{img}
	}

	thumbs, err := sh.thumbs.Generate(ctx, images)
	if err != nil {
		return err
	}
	paths, err := thumbnail.WritePNG(sh.thumbDir, thumbs)
	if err != nil {
		return err
	}
	for i, th := range thumbs {
		sh.printf("[+] %s %dx%d -> %s\n", th.Image.Name, th.Width, th.Height, paths[i])
	}
	if skipped := len(images) - len(thumbs); skipped > 0 {
		sh.printf("[!] %d images could not be decoded\n", skipped)
	}
	return nil
}

func cmdShow(_ context.Context, sh *Shell, _ []string) error {
	if sh.sess.Image() == "" {
		sh.println("[*] no image selected")
	}
	sh.println(sh.view.Trigger(sh.sess.Trigger()))
	sh.println(sh.view.Selection(sh.sess.Tags()))
	sh.println(sh.view.Caption(sh.sess.Caption()))
	return nil
}

func cmdAdd(_ context.Context, sh *Shell, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	c, err := tags.ParseFold(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")
	if err := sh.sess.Add(c, text); err != nil {
		return err
	}
	sh.printf("[+] %s (%s)\n", text, c)
	return nil
}

func cmdPick(_ context.Context, sh *Shell, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	c, err := tags.ParseFold(args[0])
	if err != nil {
		return err
	}
	n, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	text, err := sh.sess.Pick(c, n)
	if err != nil {
		return err
	}
	sh.printf("[+] %s (%s)\n", text, c)
	return nil
}

func cmdRemove(_ context.Context, sh *Shell, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	n, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	t, err := sh.sess.Remove(n)
	if err != nil {
		return err
	}
	sh.printf("[+] removed %s (%s)\n", t.Text, t.Category)
	return nil
}

func cmdEdit(_ context.Context, sh *Shell, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	n, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return sh.sess.Edit(n, strings.Join(args[1:], " "))
}

func cmdTrigger(_ context.Context, sh *Shell, args []string) error {
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "--clear":
		sh.sess.SetTrigger("")
	default:
		sh.sess.SetTrigger(strings.Join(args, " "))
	}
	sh.println(sh.view.Trigger(sh.sess.Trigger()))
	return nil
}

func cmdClear(_ context.Context, sh *Shell, _ []string) error {
	sh.sess.Clear()
	sh.println("[+] cleared")
	return nil
}

func cmdSave(_ context.Context, sh *Shell, _ []string) error {
	res, err := sh.sess.Save()
	if err != nil {
		return err
	}
	sh.printf("[+] %s\n", res.CaptionPath)
	sh.println(sh.view.Caption(res.Caption))
	return nil
}

func cmdCopy(_ context.Context, sh *Shell, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	payload, err := sh.sess.Copy()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		sh.println(payload)
		return nil
	}
	if err := os.WriteFile(args[0], []byte(payload), 0644); err != nil {
		return err
	}
	sh.printf("[+] copied to %s\n", args[0])
	return nil
}

func cmdPaste(ctx context.Context, sh *Shell, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	payload := sh.rest
	if !strings.HasPrefix(payload, "{") {
		data, err := os.ReadFile(payload)
		if err != nil {
			sh.logger.Debug("paste argument is not a readable file", zap.Error(err))
		} else {
			payload = string(data)
		}
	}

	ok, err := sh.sess.Paste(payload)
	if err != nil {
		return err
	}
	if !ok {
		sh.println("[!] nothing to paste")
		return nil
	}
	sh.println("[+] pasted")
	return cmdShow(ctx, sh, nil)
}

func cmdCatalog(_ context.Context, sh *Shell, args []string) error {
	cat := sh.sess.Catalog()
	if len(args) == 0 {
		for _, c := range tags.All() {
			sh.println(sh.view.Catalog(c, cat.Available(c)))
		}
		return nil
	}
	if len(args) == 1 {
		c, err := tags.ParseFold(args[0])
		if err != nil {
			return err
		}
		sh.println(sh.view.Catalog(c, cat.Available(c)))
		return nil
	}

	c, err := tags.ParseFold(args[1])
	if err != nil {
		return err
	}
	rest := args[2:]
	switch strings.ToLower(args[0]) {
	case "add":
		if len(rest) == 0 {
			return errUsage
		}
		if err := cat.Add(c, strings.Join(rest, " ")); err != nil {
			return err
		}
	case "rm":
		if len(rest) == 0 {
			return errUsage
		}
		text := strings.Join(rest, " ")
		if !cat.Remove(c, text) {
			return fmt.Errorf("%q is not in the %s catalog", text, c)
		}
	case "rename":
		if len(rest) < 2 {
			return errUsage
		}
		n, err := parseIndex(rest[0])
		if err != nil {
			return err
		}
		if err := cat.Rename(c, n, strings.Join(rest[1:], " ")); err != nil {
			return err
		}
	default:
		return errUsage
	}

	if sh.persist != nil {
		if err := sh.persist(cat.Snapshot()); err != nil {
			sh.printf("[!] catalog not saved: %v\n", err)
		}
	}
	sh.println(sh.view.Catalog(c, cat.Available(c)))
	return nil
}

func cmdCategories(_ context.Context, sh *Shell, _ []string) error {
	for _, c := range tags.All() {
		kind := "many"
		if c.IsSingleValued() {
			kind = "one"
		}
		sh.printf("%2d  %-20s %s\n", tags.Rank(c), c, kind)
	}
	return nil
}

func cmdHelp(_ context.Context, sh *Shell, _ []string) error {
	for _, cmd := range sh.registry.Commands() {
		sh.printf("  %-40s %s\n", cmd.Usage, cmd.Summary)
	}
	return nil
}

func cmdQuit(_ context.Context, sh *Shell, _ []string) error {
	sh.done = true
	return nil
}
