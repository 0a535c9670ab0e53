package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/jukestrip/catalog"
)

func TestWriteDebugJSON(t *testing.T) {
	res := buildWith(t, []catalog.Disc{sampleDisc("Album", "Artist", "One")}, DefaultOptions())
	path := filepath.Join(t.TempDir(), "debug", "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("写调试文件失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取调试文件失败: %v", err)
	}
	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("调试文件不是合法 JSON: %v", err)
	}
	if len(decoded.Pages) != 1 || len(decoded.Pages[0].Strips) != 1 {
		t.Fatalf("调试文件内容错误: %+v", decoded.Pages)
	}
	if decoded.Pages[0].Strips[0].CropMarks != AllCropMarks() {
		t.Fatalf("第一个格子应四边都有裁切线: %+v", decoded.Pages[0].Strips[0].CropMarks)
	}
}

func TestWriteDebugJSONNilResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.json")
	if err := WriteDebugJSON(nil, path); err != nil {
		t.Fatalf("nil 结果应直接返回: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("nil 结果不应写文件")
	}
}
