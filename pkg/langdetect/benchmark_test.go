package langdetect

import "testing"

var benchSources = map[string]string{
	"go":     "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n",
	"python": "def hello():\n    print(\"hi\")\n\nif __name__ == \"__main__\":\n    hello()\n",
	"json":   "{\n  \"name\": \"page\",\n  \"children\": [1, 2, 3]\n}\n",
	"short":  "hello",
}

func BenchmarkDetect(b *testing.B) {
	for name, src := range benchSources {
		content := []byte(src)
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				Detect(content)
			}
		})
	}
}

func BenchmarkNormalize(b *testing.B) {
	for _, fence := range []string{"py", "golang", "C++", "unknown-lang"} {
		b.Run(fence, func(b *testing.B) {
			for b.Loop() {
				Normalize(fence)
			}
		})
	}
}

func BenchmarkResolverUnlabeledFence(b *testing.B) {
	r := Resolver{DetectContent: true}
	src := benchSources["python"]
	for b.Loop() {
		r.Language("", src)
	}
}
