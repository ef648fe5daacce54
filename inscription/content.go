package inscription

import (
	"path/filepath"
	"strings"

	"github.com/inscription-c/pins/constants"
	"github.com/nareix/joy4/av"
	"github.com/nareix/joy4/av/avutil"
	"github.com/nareix/joy4/format"
	"github.com/pkg/errors"
)

var contentTypeByExt = map[constants.Extension]constants.ContentType{}

func init() {
	format.RegisterAll()
	for _, media := range constants.Medias {
		for _, ext := range media.Extensions {
			contentTypeByExt[ext] = media.ContentType
		}
	}
}

// ContentTypeForPath infers the content type of a file from its extension.
// mp4 files must carry an h264 video stream.
func ContentTypeForPath(path string) (constants.ContentType, error) {
	ext := constants.Extension(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
	contentType, ok := contentTypeByExt[ext]
	if !ok {
		return "", errors.Errorf("unsupported file extension `%s`", ext)
	}
	if ext != constants.ExtensionMp4 {
		return contentType, nil
	}
	h264, err := isH264(path)
	if err != nil {
		return "", err
	}
	if !h264 {
		return "", errors.Errorf("%s: mp4 video must be h264", path)
	}
	return contentType, nil
}

func isH264(path string) (bool, error) {
	demuxer, err := avutil.Open(path)
	if err != nil {
		return false, errors.Wrapf(err, "open %s", path)
	}
	defer demuxer.Close()

	streams, err := demuxer.Streams()
	if err != nil {
		return false, errors.Wrapf(err, "read streams of %s", path)
	}
	if len(streams) == 0 {
		return false, nil
	}
	_, video := streams[0].(av.VideoCodecData)
	return video && streams[0].Type() == av.H264, nil
}
