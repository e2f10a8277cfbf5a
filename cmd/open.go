package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lvdlvd/sysvread/config"
	"github.com/lvdlvd/sysvread/detect"
	"github.com/lvdlvd/sysvread/fsys/sysv"
)

// Options translates the configuration into listing options.
func Options(conf *config.Config, log logrus.FieldLogger) []sysv.Option {
	opts := []sysv.Option{sysv.WithLogger(log)}
	if conf.SkipUnused {
		opts = append(opts, sysv.SkipUnused())
	}
	if conf.CountBySize {
		opts = append(opts, sysv.CountBySize())
	}
	if conf.Parallel > 1 {
		opts = append(opts, sysv.Parallel(conf.Parallel))
	}
	return opts
}

// Open opens the image at imagePath. Images that hold a filesystem other
// than s5 are rejected by name; anything else goes to the superblock
// decoder, which reports truncation and bad magic itself.
func Open(imagePath string, conf *config.Config, log logrus.FieldLogger) (*sysv.FS, detect.Type, error) {
	img := sysv.File(imagePath)
	size, err := img.Size()
	if err != nil {
		return nil, detect.Unknown, fmt.Errorf("stat image: %w", err)
	}

	fsType, err := detect.Detect(img)
	if err != nil {
		log.WithError(err).Debug("detection failed")
	} else if fsType != detect.Unknown && !fsType.IsSysV() {
		return nil, fsType, fmt.Errorf("image holds a %s filesystem, not s5", fsType)
	}

	f, err := sysv.Open(img, size, Options(conf, log)...)
	if err != nil {
		return nil, fsType, fmt.Errorf("opening filesystem: %w", err)
	}

	log.WithFields(logrus.Fields{
		"image": imagePath,
		"type":  f.Type(),
		"size":  size,
	}).Debug("opened image")
	return f, fsType, nil
}
