package frontend

import (
	"os"

	"gopkg.in/yaml.v3"
)

// load the API server config from a file.
func LoadFrontendConfig(filepath string) (*FrontendConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (out *FrontendConfig, err error) {
	var _out *FrontendConfigMarshall
	if err = yaml.Unmarshal(conf, &_out); err != nil {
		return nil, err
	}
	if _out == nil {
		_out = &FrontendConfigMarshall{}
	}
	out = TrySeal(_out)
	return out, nil
}
