package constants

const (
	AppName = "pins"

	// InscriptionMarker is the first data push of every inscription.
	InscriptionMarker = "ord"

	// MaxChunkLen is the largest content part pushed as a single script element.
	MaxChunkLen = 240
	// MaxPayloadLen bounds the compiled size of the chunks revealed by one transaction.
	MaxPayloadLen = 1500

	// UtxoMinValue is the carrier value of every P2SH commitment and of the
	// destination output.
	UtxoMinValue = 1_000

	DefaultProtocolFee        = 1_000_000
	DefaultProtocolFeeAddress = "BDJqmvvM2Ceh3JcguE3xScBUAGE88nJjcj"

	// MinPrepareChange is the smallest change accepted when splitting funds.
	MinPrepareChange = 1_000

	// linear size estimate, in bytes
	FeeBaseSize   = 10
	FeeInputSize  = 148
	FeeOutputSize = 34

	DefaultFeeRate = 1.0

	// MaxContentTypeLen bounds the content type in bytes. It fits one script
	// push and the job table column.
	MaxContentTypeLen = 255

	TxVersion       = 1
	FundingSequence = 0xfffffffe

	OneBtc = 100_000_000
)

type ContentType string

func (t ContentType) Bytes() []byte {
	return []byte(t)
}

func (t ContentType) String() string {
	return string(t)
}

const (
	ContentTypeCbor             ContentType = "application/cbor"
	ContentTypeJson             ContentType = "application/json"
	ContentTypeOctetStream      ContentType = "application/octet-stream"
	ContentTypePdf              ContentType = "application/pdf"
	ContentTypePgpSignature     ContentType = "application/pgp-signature"
	ContentTypeProtobuf         ContentType = "application/protobuf"
	ContentTypeXJavascript      ContentType = "application/x-javascript"
	ContentTypeYaml             ContentType = "application/yaml"
	ContentTypeAudioFlac        ContentType = "audio/flac"
	ContentTypeAudioMpeg        ContentType = "audio/mpeg"
	ContentTypeAudioWav         ContentType = "audio/wav"
	ContentTypeFrontOtf         ContentType = "font/otf"
	ContentTypeFrontTtf         ContentType = "font/ttf"
	ContentTypeFrontWoff        ContentType = "font/woff"
	ContentTypeFrontWoff2       ContentType = "font/woff2"
	ContentTypeImageApng        ContentType = "image/apng"
	ContentTypeImageAVif        ContentType = "image/avif"
	ContentTypeImageGif         ContentType = "image/gif"
	ContentTypeImageJpeg        ContentType = "image/jpeg"
	ContentTypeImagePng         ContentType = "image/png"
	ContentTypeImageSvgXml      ContentType = "image/svg+xml"
	ContentTypeImageWebp        ContentType = "image/webp"
	ContentTypeModelGltfJson    ContentType = "model/gltf+json"
	ContentTypeModelGltfBinary  ContentType = "model/gltf-binary"
	ContentTypeModelStl         ContentType = "model/stl"
	ContentTypeTextCss          ContentType = "text/css"
	ContentTypeTextHtml         ContentType = "text/html"
	ContentTypeTextHtmlUtf8     ContentType = "text/html;charset=utf-8"
	ContentTypeTextJs           ContentType = "text/javascript"
	ContentTypeTextMarkdown     ContentType = "text/markdown"
	ContentTypeTextMarkdownUtf8 ContentType = "text/markdown;charset=utf-8"
	ContentTypeTextPlain        ContentType = "text/plain"
	ContentTypeTextPlainUtf8    ContentType = "text/plain;charset=utf-8"
	ContentTypeTextXPython      ContentType = "text/x-python"
	ContentTypeVideoMp4         ContentType = "video/mp4"
	ContentTypeVideoWebm        ContentType = "video/webm"
)

type Extension string

const (
	ExtensionCbor  Extension = "cbor"
	ExtensionJson  Extension = "json"
	ExtensionBin   Extension = "bin"
	ExtensionPdf   Extension = "pdf"
	ExtensionAsc   Extension = "asc"
	ExtensionBinPb Extension = "binpb"
	ExtensionYaml  Extension = "yaml"
	ExtensionYml   Extension = "yml"
	ExtensionFlac  Extension = "flac"
	ExtensionMp3   Extension = "mp3"
	ExtensionWav   Extension = "wav"
	ExtensionOtf   Extension = "otf"
	ExtensionTtf   Extension = "ttf"
	ExtensionWoff  Extension = "woff"
	ExtensionWoff2 Extension = "woff2"
	ExtensionApng  Extension = "apng"
	ExtensionGif   Extension = "gif"
	ExtensionJpg   Extension = "jpg"
	ExtensionJpeg  Extension = "jpeg"
	ExtensionPng   Extension = "png"
	ExtensionSvg   Extension = "svg"
	ExtensionWebp  Extension = "webp"
	ExtensionGltf  Extension = "gltf"
	ExtensionGlb   Extension = "glb"
	ExtensionStl   Extension = "stl"
	ExtensionCss   Extension = "css"
	ExtensionHtml  Extension = "html"
	ExtensionJs    Extension = "js"
	ExtensionMd    Extension = "md"
	ExtensionTxt   Extension = "txt"
	ExtensionPy    Extension = "py"
	ExtensionMp4   Extension = "mp4"
	ExtensionWebm  Extension = "webm"
)

// Media maps a content type to the file extensions it is inferred from.
type Media struct {
	ContentType ContentType
	Extensions  []Extension
}

var Medias = []Media{
	{ContentTypeCbor, []Extension{ExtensionCbor}},
	{ContentTypeJson, []Extension{ExtensionJson}},
	{ContentTypeOctetStream, []Extension{ExtensionBin}},
	{ContentTypePdf, []Extension{ExtensionPdf}},
	{ContentTypePgpSignature, []Extension{ExtensionAsc}},
	{ContentTypeProtobuf, []Extension{ExtensionBinPb}},
	{ContentTypeXJavascript, []Extension{}},
	{ContentTypeYaml, []Extension{ExtensionYaml, ExtensionYml}},
	{ContentTypeAudioFlac, []Extension{ExtensionFlac}},
	{ContentTypeAudioMpeg, []Extension{ExtensionMp3}},
	{ContentTypeAudioWav, []Extension{ExtensionWav}},
	{ContentTypeFrontOtf, []Extension{ExtensionOtf}},
	{ContentTypeFrontTtf, []Extension{ExtensionTtf}},
	{ContentTypeFrontWoff, []Extension{ExtensionWoff}},
	{ContentTypeFrontWoff2, []Extension{ExtensionWoff2}},
	{ContentTypeImageApng, []Extension{ExtensionApng}},
	{ContentTypeImageAVif, []Extension{}},
	{ContentTypeImageGif, []Extension{ExtensionGif}},
	{ContentTypeImageJpeg, []Extension{ExtensionJpg, ExtensionJpeg}},
	{ContentTypeImagePng, []Extension{ExtensionPng}},
	{ContentTypeImageSvgXml, []Extension{ExtensionSvg}},
	{ContentTypeImageWebp, []Extension{ExtensionWebp}},
	{ContentTypeModelGltfJson, []Extension{ExtensionGltf}},
	{ContentTypeModelGltfBinary, []Extension{ExtensionGlb}},
	{ContentTypeModelStl, []Extension{ExtensionStl}},
	{ContentTypeTextCss, []Extension{ExtensionCss}},
	{ContentTypeTextHtml, []Extension{}},
	{ContentTypeTextHtmlUtf8, []Extension{ExtensionHtml}},
	{ContentTypeTextJs, []Extension{ExtensionJs}},
	{ContentTypeTextMarkdown, []Extension{}},
	{ContentTypeTextMarkdownUtf8, []Extension{ExtensionMd}},
	{ContentTypeTextPlain, []Extension{}},
	{ContentTypeTextPlainUtf8, []Extension{ExtensionTxt}},
	{ContentTypeTextXPython, []Extension{ExtensionPy}},
	{ContentTypeVideoMp4, []Extension{ExtensionMp4}},
	{ContentTypeVideoWebm, []Extension{ExtensionWebm}},
}
