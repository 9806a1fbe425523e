// Package messages holds the user-facing strings returned in job progress
// and API error payloads. The product UI is Arabic, so the progress
// messages are Arabic; internal error strings stay English for logs.
package messages

import "fmt"

// Progress messages, in pipeline order.
const (
	StartingUpload      = "بدء معالجة الملف المرفوع..."
	StartingVideo       = "بدء معالجة الفيديو..."
	StartingYouTube     = "بدء معالجة فيديو يوتيوب..."
	YouTubeAccepted     = "بدأت معالجة فيديو يوتيوب"
	DownloadingVideo    = "جاري تحميل الفيديو من يوتيوب..."
	DownloadDone        = "تم تحميل الفيديو، جاري معالجة الترجمة..."
	ExtractingAudio     = "جاري استخراج الصوت من الفيديو..."
	AnalyzingAudio      = "جاري تحليل الصوت..."
	RecognizingSpeech   = "جاري التعرف على الكلام..."
	RecognitionPatience = "جاري التعرف على الكلام... قد تستغرق هذه العملية بعض الوقت"
	AssemblingSubtitles = "جاري إنشاء ملف الترجمة..."
	Processing          = "جاري المعالجة..."
	SubtitleReady       = "تم إنشاء الترجمة بنجاح"
	PlaceholderCreated  = "تم إنشاء ترجمة تلقائية (لم يتم التعرف على كلام)"
)

// Error messages.
const (
	MissingYouTubeURL = "يرجى تقديم رابط يوتيوب صالح"
	InvalidYouTubeURL = "رابط يوتيوب غير صالح. يرجى التحقق من الرابط والمحاولة مرة أخرى."
	DownloadFailed    = "فشل في تحميل الفيديو من يوتيوب. يرجى التحقق من الرابط والمحاولة مرة أخرى."
	AllStrategiesLost = "فشلت جميع طرق التنزيل. يرجى التحقق من الرابط والمحاولة مرة أخرى."
	GenericFailure    = "حدث خطأ أثناء المعالجة"
	ExtractionFailed  = "فشل في استخراج الصوت من الفيديو. يرجى التأكد من أن الملف يحتوي على مسار صوتي."
	RecognitionFailed = "فشل التعرف على الكلام. يرجى المحاولة مرة أخرى."
	NoContentFound    = "اكتملت المعالجة ولكن لم يتم العثور على محتوى الترجمة"
)

// RecognizingPercent formats the recognition progress message with the
// current percentage.
func RecognizingPercent(percent int) string {
	return fmt.Sprintf("جاري التعرف على الكلام... %d%%", percent)
}

// ProcessingFailed formats a generic failure message with detail.
func ProcessingFailed(detail string) string {
	return fmt.Sprintf("حدث خطأ: %s", detail)
}

// SubtitleFailed formats a subtitle generation failure message.
func SubtitleFailed(detail string) string {
	return fmt.Sprintf("حدث خطأ أثناء إنشاء الترجمة: %s", detail)
}
