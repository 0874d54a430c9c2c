// Command collider authors the collision shape for one sprite image and
// writes it to the image's .collider sidecar.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sprite2d/collider"
	"github.com/milk9111/sprite2d/logging"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-debug] <image.png>\n", os.Args[0])
	flag.PrintDefaults()
}

// checkArgs returns the image path or an error suitable for the operator.
func checkArgs(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("expected exactly one image path")
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return "", fmt.Errorf("image %s: %w", args[0], err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("image %s is a directory", args[0])
	}
	return args[0], nil
}

func loadImage(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	path, err := checkArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}

	log := logging.New(*debug)
	defer func() { _ = log.Sync() }()

	img, err := loadImage(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	store := openPrefs(logging.Named(log, "prefs"))
	prefs := store.Load()

	session := NewSession(collider.PathFor(path), prefs.CircleStep)
	if err := session.Load(); err != nil {
		log.Warn("existing collider ignored", zap.String("path", session.Path()), zap.Error(err))
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", zap.Error(err))
		clipboardOK = false
	}

	editor := NewEditor(session, img, prefs, clipboardOK, log)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(windowDefault, windowDefault)
	ebiten.SetWindowTitle("collider - " + path)

	if err := ebiten.RunGame(editor); err != nil {
		log.Error("run editor", zap.Error(err))
	}
	if err := store.Save(editor.Prefs()); err != nil {
		log.Warn("save preferences", zap.Error(err))
	}
}
