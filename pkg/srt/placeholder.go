package srt

// Placeholder returns a canned, well-formed subtitle document explaining
// that extraction failed. Arabic and French get bilingual variants; every
// other language falls back to the English-only document. Blocks run on a
// five second cadence.
func Placeholder(language string) string {
	switch language {
	case "ar":
		return placeholderArabic
	case "fr":
		return placeholderFrench
	default:
		return placeholderEnglish
	}
}

const placeholderArabic = `1
00:00:00,000 --> 00:00:05,000
هذه ترجمات عينة لفيديو.

2
00:00:05,000 --> 00:00:10,000
لم نتمكن من استخراج النص الفعلي من هذا الفيديو.

3
00:00:10,000 --> 00:00:15,000
قد يكون ذلك بسبب جودة الصوت أو مشكلة في تنزيل الفيديو.

4
00:00:15,000 --> 00:00:20,000
يرجى المحاولة مرة أخرى أو تجربة فيديو آخر.

5
00:00:20,000 --> 00:00:25,000
شكرًا لاستخدامك أداة استخراج الترجمات.

6
00:00:25,000 --> 00:00:30,000
These are sample subtitles for the video.

7
00:00:30,000 --> 00:00:35,000
We couldn't extract the actual text from this video.

8
00:00:35,000 --> 00:00:40,000
This might be due to audio quality or an issue with the video download.

9
00:00:40,000 --> 00:00:45,000
Please try again or try another video.

10
00:00:45,000 --> 00:00:50,000
Thank you for using the Subtitle Extractor tool.
`

const placeholderFrench = `1
00:00:00,000 --> 00:00:05,000
Ce sont des sous-titres d'exemple pour la vidéo.

2
00:00:05,000 --> 00:00:10,000
Nous n'avons pas pu extraire le texte réel de cette vidéo.

3
00:00:10,000 --> 00:00:15,000
Cela peut être dû à la qualité audio ou à un problème de téléchargement de la vidéo.

4
00:00:15,000 --> 00:00:20,000
Veuillez réessayer ou essayer une autre vidéo.

5
00:00:20,000 --> 00:00:25,000
Merci d'utiliser l'outil d'extraction de sous-titres.

6
00:00:25,000 --> 00:00:30,000
These are sample subtitles for the video.

7
00:00:30,000 --> 00:00:35,000
We couldn't extract the actual text from this video.

8
00:00:35,000 --> 00:00:40,000
This might be due to audio quality or an issue with the video download.

9
00:00:40,000 --> 00:00:45,000
Please try again or try another video.

10
00:00:45,000 --> 00:00:50,000
Thank you for using the Subtitle Extractor tool.
`

const placeholderEnglish = `1
00:00:00,000 --> 00:00:05,000
These are sample subtitles for the video.

2
00:00:05,000 --> 00:00:10,000
We couldn't extract the actual text from this video.

3
00:00:10,000 --> 00:00:15,000
This might be due to audio quality or an issue with the video download.

4
00:00:15,000 --> 00:00:20,000
Please try again or try another video.

5
00:00:20,000 --> 00:00:25,000
Thank you for using the Subtitle Extractor tool.
`
